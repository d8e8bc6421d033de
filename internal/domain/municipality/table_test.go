package municipality_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/codicefiscale-api/internal/domain"
	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
	"github.com/jhoicas/codicefiscale-api/internal/domain/municipality"
	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

func sampleEntries() []entity.Municipality {
	return []entity.Municipality{
		{Name: "Roma", CadastralCode: "H501", Province: "RM"},
		{Name: "Milano", CadastralCode: "F205", Province: "MI"},
		{Name: "Reggio nell'Emilia", CadastralCode: "H223", Province: "RE"},
	}
}

func TestLookup_SinDistinguirMayusculas(t *testing.T) {
	tbl, err := municipality.NewTable(sampleEntries())
	require.NoError(t, err)

	for _, q := range []string{"Roma", "ROMA", "roma", "  rOmA\t"} {
		m, err := tbl.Lookup(q)
		require.NoError(t, err, q)
		assert.Equal(t, "H501", m.CadastralCode)
		assert.Equal(t, "RM", m.Province)
		assert.Equal(t, "Roma", m.Name)
	}

	m, err := tbl.Lookup("reggio nell'emilia")
	require.NoError(t, err)
	assert.Equal(t, "H223", m.CadastralCode)
}

func TestLookup_SoloCoincidenciaExacta(t *testing.T) {
	tbl, err := municipality.NewTable(sampleEntries())
	require.NoError(t, err)

	for _, q := range []string{"Rom", "Roma Capitale", "Mil", "", "Reggio"} {
		_, err := tbl.Lookup(q)
		assert.ErrorIs(t, err, codicefiscale.ErrMunicipalityNotFound, "consulta %q", q)
	}
}

func TestLookup_ErrorLlevaElNombre(t *testing.T) {
	tbl, err := municipality.NewTable(sampleEntries())
	require.NoError(t, err)

	_, err = tbl.Lookup(" Atlantide ")
	var fe *codicefiscale.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Atlantide", fe.Value)
	assert.Equal(t, codicefiscale.FieldBirthplace, fe.Field)
}

func TestCadastralCode_ParaElEncoder(t *testing.T) {
	tbl, err := municipality.NewTable(sampleEntries())
	require.NoError(t, err)

	code, err := codicefiscale.NewEncoder(tbl).Compute("Mario", "Rossi", "1985-04-15", "M", "roma")
	require.NoError(t, err)
	assert.Equal(t, "RSSMRA85D15H501T", code)
}

func TestNewTable_Normaliza(t *testing.T) {
	tbl, err := municipality.NewTable([]entity.Municipality{
		{Name: " Torino ", CadastralCode: "l219", Province: "to"},
	})
	require.NoError(t, err)
	m, err := tbl.Lookup("torino")
	require.NoError(t, err)
	assert.Equal(t, entity.Municipality{Name: "Torino", CadastralCode: "L219", Province: "TO"}, m)
}

func TestNewTable_RechazaDuplicados(t *testing.T) {
	entries := append(sampleEntries(), entity.Municipality{Name: "ROMA", CadastralCode: "H502", Province: "RM"})
	_, err := municipality.NewTable(entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidData)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestNewTable_RechazaEntradasMalformadas(t *testing.T) {
	cases := map[string]entity.Municipality{
		"código corto":     {Name: "Roma", CadastralCode: "H50", Province: "RM"},
		"código largo":     {Name: "Roma", CadastralCode: "H5011", Province: "RM"},
		"código símbolos":  {Name: "Roma", CadastralCode: "H-01", Province: "RM"},
		"provincia larga":  {Name: "Roma", CadastralCode: "H501", Province: "ROM"},
		"provincia número": {Name: "Roma", CadastralCode: "H501", Province: "R1"},
		"nombre vacío":     {Name: "  ", CadastralCode: "H501", Province: "RM"},
	}
	for name, e := range cases {
		_, err := municipality.NewTable([]entity.Municipality{e})
		assert.ErrorIs(t, err, domain.ErrInvalidData, name)
	}
}

func TestAll_DevuelveCopia(t *testing.T) {
	tbl, err := municipality.NewTable(sampleEntries())
	require.NoError(t, err)

	all := tbl.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Roma", all[0].Name)
	all[0].CadastralCode = "ZZZZ"

	m, err := tbl.Lookup("Roma")
	require.NoError(t, err)
	assert.Equal(t, "H501", m.CadastralCode, "la tabla no se modifica desde fuera")
	assert.Equal(t, 3, tbl.Len())
}

func TestFromCities(t *testing.T) {
	tbl, err := municipality.FromCities([]entity.City{
		{ID: 1, Name: "Napoli", Province: "NA", CadastralCode: "F839"},
	})
	require.NoError(t, err)
	code, err := tbl.CadastralCode("NAPOLI")
	require.NoError(t, err)
	assert.Equal(t, "F839", code)
}

func TestLookup_LectoresConcurrentes(t *testing.T) {
	tbl, err := municipality.NewTable(sampleEntries())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := tbl.Lookup("milano")
			assert.NoError(t, err)
			assert.Equal(t, "F205", m.CadastralCode)
		}()
	}
	wg.Wait()
}
