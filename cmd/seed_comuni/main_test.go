package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/codicefiscale-api/internal/domain/entity"
)

func TestWriteSeed(t *testing.T) {
	cities := []entity.City{
		{
			ID: 1, Name: "Reggio nell'Emilia", Province: "RE", Region: "Emilia-Romagna",
			Population: 171944, Mayor: "Marco Massari", Area: decimal.RequireFromString("231.56"),
			IstatCode: "035033", CadastralCode: "H223", PostalCodes: []string{"42121", "42122"},
		},
		{ID: 2, Name: "Roma", Province: "RM", Region: "Lazio", Area: decimal.Zero, CadastralCode: "H501"},
	}

	var b strings.Builder
	require.NoError(t, writeSeed(&b, cities))
	sql := b.String()

	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS comuni")
	assert.Contains(t, sql, "'Reggio nell''Emilia'", "las comillas simples deben escaparse")
	assert.Contains(t, sql, "231.56")
	assert.Contains(t, sql, "ARRAY['42121', '42122']")
	assert.Contains(t, sql, "'H501', '{}')", "sin CAP se inserta un array vacío")
	assert.Equal(t, 2, strings.Count(sql, "ON CONFLICT (name)"))
	assert.Less(t, strings.Index(sql, "Reggio"), strings.Index(sql, "'Roma'"), "se conserva el orden del dataset")
}
