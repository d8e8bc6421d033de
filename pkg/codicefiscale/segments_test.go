package codicefiscale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Rossi":        "ROSSI",
		"  de luca ":   "DELUCA",
		"D'Amore":      "DAMORE",
		"Nicolò":       "NICOLO",
		"Gàbriel-Èlia": "GABRIELELIA",
		"Anna Maria 2": "ANNAMARIA",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, codicefiscale.NormalizeName(in), "entrada %q", in)
	}
}

func TestSurnameCode(t *testing.T) {
	cases := map[string]string{
		"Rossi":   "RSS",
		"Bianchi": "BNC",
		"Verdi":   "VRD",
		"Neri":    "NRE",
		"Poe":     "POE",
		"Fo":      "FOX",
		"U":       "UXX",
		"De Luca": "DLC",
		"Yu":      "YUX",
	}
	for in, want := range cases {
		assert.Equal(t, want, codicefiscale.SurnameCode(in), "apellido %q", in)
	}
}

// Con 4 o más consonantes el nombre usa la 1ª, 3ª y 4ª; el apellido no.
func TestNameCode_SaltaSegundaConsonante(t *testing.T) {
	cases := map[string]string{
		"Roberto":   "RRT",
		"Giuseppe":  "GPP",
		"Francesca": "FNC",
		"Mario":     "MRA",
		"Luca":      "LCU",
		"Ada":       "DAA",
		"Al":        "LAX",
		"Io":        "IOX",
		"Anna":      "NNA",
	}
	for in, want := range cases {
		assert.Equal(t, want, codicefiscale.NameCode(in), "nombre %q", in)
	}
	assert.Equal(t, "RBR", codicefiscale.SurnameCode("Roberto"), "el apellido toma las 3 primeras")
}

func TestSegmentos_LongitudFija(t *testing.T) {
	for _, s := range []string{"", "A", "B", "Xi", "Ugo", "Bartolomeo", "Castiglione della Pescaia"} {
		assert.Len(t, codicefiscale.SurnameCode(s), codicefiscale.SurnameLen, "apellido %q", s)
		assert.Len(t, codicefiscale.NameCode(s), codicefiscale.NameLen, "nombre %q", s)
	}
}

func TestYearCode(t *testing.T) {
	assert.Equal(t, "85", codicefiscale.YearCode(1985))
	assert.Equal(t, "04", codicefiscale.YearCode(2004))
	assert.Equal(t, "00", codicefiscale.YearCode(1900))
	assert.Equal(t, "07", codicefiscale.YearCode(7))
}

func TestMonthCode_Tabla(t *testing.T) {
	want := "ABCDEHLMPRST"
	for i := 0; i < 12; i++ {
		got, err := codicefiscale.MonthCode(i)
		require.NoError(t, err)
		assert.Equal(t, want[i], got, "mes %d", i)
	}
	jan, _ := codicefiscale.MonthCode(0)
	jun, _ := codicefiscale.MonthCode(5)
	dec, _ := codicefiscale.MonthCode(11)
	assert.Equal(t, byte('A'), jan)
	assert.Equal(t, byte('H'), jun)
	assert.Equal(t, byte('T'), dec)

	_, err := codicefiscale.MonthCode(12)
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidDate)
	_, err = codicefiscale.MonthCode(-1)
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidDate)
}

func TestDayCode(t *testing.T) {
	cases := []struct {
		day  int
		sex  codicefiscale.Sex
		want string
	}{
		{5, codicefiscale.Male, "05"},
		{5, codicefiscale.Female, "45"},
		{12, codicefiscale.Male, "12"},
		{12, codicefiscale.Female, "52"},
		{31, codicefiscale.Female, "71"},
		{1, codicefiscale.Female, "41"},
	}
	for _, tc := range cases {
		got, err := codicefiscale.DayCode(tc.day, tc.sex)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := codicefiscale.DayCode(0, codicefiscale.Male)
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidDate)
	_, err = codicefiscale.DayCode(32, codicefiscale.Female)
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidDate)
	_, err = codicefiscale.DayCode(10, codicefiscale.Sex("X"))
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidSex)

	var fe *codicefiscale.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, codicefiscale.FieldGender, fe.Field, "mismo nombre de campo que ParseSex")

	_, err = codicefiscale.DayCode(32, codicefiscale.Male)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, codicefiscale.FieldBirthdate, fe.Field)
}

func TestParseSex(t *testing.T) {
	s, err := codicefiscale.ParseSex("F")
	require.NoError(t, err)
	assert.Equal(t, codicefiscale.Female, s)

	s, err = codicefiscale.ParseSex("M")
	require.NoError(t, err)
	assert.Equal(t, codicefiscale.Male, s)

	_, err = codicefiscale.ParseSex(" m")
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidSex)

	_, err = codicefiscale.ParseSex("Maschio")
	assert.ErrorIs(t, err, codicefiscale.ErrInvalidSex)
}
