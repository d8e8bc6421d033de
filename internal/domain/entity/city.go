package entity

import "github.com/shopspring/decimal"

// City ficha de un municipio para el directorio (datos de referencia, solo lectura).
type City struct {
	ID            int
	Name          string
	Province      string
	Region        string
	Population    int
	Mayor         string
	Area          decimal.Decimal // km²
	IstatCode     string
	CadastralCode string
	PostalCodes   []string // CAP
}

// Municipality devuelve la entrada de la tabla de códigos catastrales.
func (c City) Municipality() Municipality {
	return Municipality{Name: c.Name, CadastralCode: c.CadastralCode, Province: c.Province}
}

// PostalCodeEntry un CAP con los datos de su municipio (vista aplanada).
// ID es 1..N en el orden del dataset (municipio, luego CAP).
type PostalCodeEntry struct {
	ID         int
	PostalCode string
	City       string
	Province   string
	Region     string
}
