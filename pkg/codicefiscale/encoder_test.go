package codicefiscale_test

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de referencia: códigos completos calculados a mano con las tablas
// de conversión del DM 23/12/1976. Si alguien toca las tablas de pesos, el
// orden de los segmentos o la regla de la 2ª consonante, estos tests fallan.
// ──────────────────────────────────────────────────────────────────────────────

// places resolver en memoria para los tests.
type places map[string]string

func (p places) CadastralCode(name string) (string, error) {
	if code, ok := p[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code, nil
	}
	return "", codicefiscale.NewFieldError(codicefiscale.ErrMunicipalityNotFound, codicefiscale.FieldBirthplace, name)
}

var testPlaces = places{
	"roma":    "H501",
	"milano":  "F205",
	"torino":  "L219",
	"firenze": "D612",
	"napoli":  "F839",
	"palermo": "G273",
}

var codePattern = regexp.MustCompile(`^[A-Z0-9]{15}[A-Z]$`)

func newEncoder() *codicefiscale.Encoder {
	return codicefiscale.NewEncoder(testPlaces)
}

func TestCompute_VectoresExactos(t *testing.T) {
	enc := newEncoder()

	cases := []struct {
		name, surname, birthdate, gender, birthplace string
		want                                         string
	}{
		{"Mario", "Rossi", "1985-04-15", "M", "Roma", "RSSMRA85D15H501T"},
		{"Maria", "Rossi", "1985-04-15", "F", "Roma", "RSSMRA85D55H501X"},
		{"Laura", "Bianchi", "1990-01-01", "F", "Milano", "BNCLRA90A41F205I"},
		{"Giuseppe", "Verdi", "1980-12-10", "M", "Torino", "VRDGPP80T10L219B"},
		{"Roberto", "Benigni", "1952-10-27", "M", "Firenze", "BNGRRT52R27D612I"},
		{"Al", "Fo", "2000-01-01", "M", "Roma", "FOXLAX00A01H501F"},
		{"Nicolò", "D'Amore", "1975-05-31", "F", "Napoli", "DMRNCL75E71F839M"},
		{"Mara", "Dell'Acqua", "1970-06-01", "F", "Palermo", "DLLMRA70H41G273B"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			got, err := enc.Compute(tc.name, tc.surname, tc.birthdate, tc.gender, tc.birthplace)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Regexp(t, codePattern, got)
		})
	}
}

// El ejemplo de referencia: el parcial es exactamente RSSMRA85D15H501.
func TestPartial_RossiMario(t *testing.T) {
	enc := newEncoder()
	partial, err := enc.Partial(codicefiscale.Person{
		GivenName:  "Mario",
		FamilyName: "Rossi",
		BirthDate:  time.Date(1985, time.April, 15, 0, 0, 0, 0, time.UTC),
		Sex:        codicefiscale.Male,
		Birthplace: "  roma ",
	})
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA85D15H501", partial)
	assert.Len(t, partial, codicefiscale.PartialLen)
}

func TestCompute_Determinista(t *testing.T) {
	enc := newEncoder()
	first, err := enc.Compute("Mario", "Rossi", "1985-04-15", "M", "Roma")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := enc.Compute("Mario", "Rossi", "1985-04-15", "M", "Roma")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompute_Concurrente(t *testing.T) {
	enc := newEncoder()
	const workers = 32
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = enc.Compute("Nicolò", "D'Amore", "1975-05-31", "F", "Napoli")
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, "DMRNCL75E71F839M", r)
	}
}

// Para un día fijo, el segmento femenino vale el masculino + 40.
func TestCompute_OffsetSexoFemenino(t *testing.T) {
	enc := newEncoder()
	for day := 1; day <= 28; day++ {
		date := fmt.Sprintf("1999-02-%02d", day)
		male, err := enc.Compute("Anna", "Neri", date, "M", "Roma")
		require.NoError(t, err)
		female, err := enc.Compute("Anna", "Neri", date, "F", "Roma")
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("%02d", day), male[9:11])
		assert.Equal(t, fmt.Sprintf("%02d", day+40), female[9:11])
		assert.Equal(t, male[:9], female[:9], "el resto del código no cambia")
		assert.Equal(t, male[11:15], female[11:15])
	}
}

// ── Errores ───────────────────────────────────────────────────────────────────

func TestCompute_MunicipioDesconocido(t *testing.T) {
	code, err := newEncoder().Compute("Mario", "Rossi", "1985-04-15", "M", "Atlantide")
	require.Error(t, err)
	assert.Empty(t, code, "no se devuelve resultado parcial")
	assert.True(t, errors.Is(err, codicefiscale.ErrMunicipalityNotFound))

	var fe *codicefiscale.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "birthplace", fe.Field)
	assert.Equal(t, "Atlantide", fe.Value)
}

func TestCompute_FechaInvalida(t *testing.T) {
	enc := newEncoder()
	for _, d := range []string{"1990-02-30", "1985-13-01", "15/04/1985", "ayer", "1985-04-15T10:00:00Z"} {
		_, err := enc.Compute("Mario", "Rossi", d, "M", "Roma")
		assert.ErrorIs(t, err, codicefiscale.ErrInvalidDate, "fecha %q", d)
	}
}

func TestCompute_SexoInvalido(t *testing.T) {
	_, err := newEncoder().Compute("Mario", "Rossi", "1985-04-15", "X", "Roma")
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidSex)

	var fe *codicefiscale.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "gender", fe.Field)
	assert.Equal(t, "X", fe.Value)
}

func TestCompute_SexoSoloMoF(t *testing.T) {
	for _, sex := range []string{"m", " M ", "f", "Femmina"} {
		_, err := newEncoder().Compute("Mario", "Rossi", "1985-04-15", sex, "Roma")
		assert.ErrorIs(t, err, codicefiscale.ErrInvalidSex, sex)
		var fe *codicefiscale.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, codicefiscale.FieldGender, fe.Field)
		assert.Equal(t, sex, fe.Value)
	}
}

func TestComputePerson_DevuelveDatosValidados(t *testing.T) {
	code, p, err := newEncoder().ComputePerson(" Maria ", "Rossi ", "1985-04-15", "F", " Roma")
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA85D55H501X", code)
	assert.Equal(t, codicefiscale.Person{
		GivenName:  "Maria",
		FamilyName: "Rossi",
		BirthDate:  time.Date(1985, time.April, 15, 0, 0, 0, 0, time.UTC),
		Sex:        codicefiscale.Female,
		Birthplace: "Roma",
	}, p)

	_, p, err = newEncoder().ComputePerson("Maria", "Rossi", "1985-04-15", "F", "Gotham")
	assert.ErrorIs(t, err, codicefiscale.ErrMunicipalityNotFound)
	assert.Zero(t, p)
}

func TestCompute_CamposVacios(t *testing.T) {
	enc := newEncoder()
	cases := map[string][5]string{
		"name":       {"", "Rossi", "1985-04-15", "M", "Roma"},
		"surname":    {"Mario", "  ", "1985-04-15", "M", "Roma"},
		"birthdate":  {"Mario", "Rossi", "", "M", "Roma"},
		"gender":     {"Mario", "Rossi", "1985-04-15", "", "Roma"},
		"birthplace": {"Mario", "Rossi", "1985-04-15", "M", "\t"},
	}
	for field, in := range cases {
		_, err := enc.Compute(in[0], in[1], in[2], in[3], in[4])
		require.ErrorIs(t, err, codicefiscale.ErrValidation, field)
		var fe *codicefiscale.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, field, fe.Field)
	}
}

func TestEncode_SexoNoDefinido(t *testing.T) {
	_, err := newEncoder().Encode(codicefiscale.Person{
		GivenName:  "Mario",
		FamilyName: "Rossi",
		BirthDate:  time.Date(1985, time.April, 15, 0, 0, 0, 0, time.UTC),
		Sex:        "",
		Birthplace: "Roma",
	})
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidSex)
}

func TestEncode_FechaCero(t *testing.T) {
	_, err := newEncoder().Encode(codicefiscale.Person{
		GivenName: "Mario", FamilyName: "Rossi", Sex: codicefiscale.Male, Birthplace: "Roma",
	})
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidDate)
}

func TestEncode_SinTablaDeMunicipios(t *testing.T) {
	_, err := codicefiscale.NewEncoder(nil).Compute("Mario", "Rossi", "1985-04-15", "M", "Roma")
	assert.ErrorIs(t, err, codicefiscale.ErrMunicipalityNotFound)
}
