package dto

import "github.com/shopspring/decimal"

// CityFilter filtros de GET /api/cities.
type CityFilter struct {
	Region string `query:"region"`
	Letter string `query:"letter"`
}

// CityResponse ficha de municipio con sus CAP.
type CityResponse struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Province      string          `json:"province"`
	Region        string          `json:"region"`
	Population    int             `json:"population"`
	Mayor         string          `json:"mayor"`
	Area          decimal.Decimal `json:"area"`
	IstatCode     string          `json:"istatCode"`
	CadastralCode string          `json:"cadastralCode"`
	PostalCodes   []string        `json:"postalCodes"`
}

// PostalCodeResponse CAP con los datos del municipio.
type PostalCodeResponse struct {
	ID         int    `json:"id"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Region     string `json:"region"`
}
