package dto

// FiscalCodeRequest body para POST /api/codice-fiscale y /api/codice-fiscale/pdf.
type FiscalCodeRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Birthdate  string `json:"birthdate"` // YYYY-MM-DD
	Gender     string `json:"gender"`    // "M" | "F"
	Birthplace string `json:"birthplace"`
}

// FiscalCodeResponse código calculado junto con los datos de entrada.
type FiscalCodeResponse struct {
	FiscalCode string `json:"fiscalCode"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Birthdate  string `json:"birthdate"`
	Birthplace string `json:"birthplace"`
}

// CityCodeResponse respuesta de GET /api/city-code/:city.
type CityCodeResponse struct {
	City     string `json:"city"`
	Code     string `json:"code"`
	Province string `json:"province"`
}
