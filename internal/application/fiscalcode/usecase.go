// Package fiscalcode expone el cálculo del codice fiscale y la consulta de códigos
// catastrales a la capa HTTP y a la CLI.
package fiscalcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/codicefiscale-api/internal/application/dto"
	"github.com/jhoicas/codicefiscale-api/internal/domain/municipality"
	"github.com/jhoicas/codicefiscale-api/pkg/codicefiscale"
)

// ErrCardUnavailable se devuelve si no hay generador de PDF configurado.
var ErrCardUnavailable = errors.New("generación de PDF no disponible")

// UseCase casos de uso del codice fiscale. No guarda estado entre llamadas.
type UseCase struct {
	table   *municipality.Table
	encoder *codicefiscale.Encoder
	cards   CardGenerator
}

// NewUseCase construye el caso de uso con la tabla de municipios ya cargada.
// cards puede ser nil si no se necesita el PDF.
func NewUseCase(table *municipality.Table, cards CardGenerator) *UseCase {
	return &UseCase{
		table:   table,
		encoder: codicefiscale.NewEncoder(table),
		cards:   cards,
	}
}

// Compute calcula el codice fiscale. Los errores son *codicefiscale.FieldError
// (ErrValidation, ErrInvalidDate, ErrInvalidSex o ErrMunicipalityNotFound).
func (uc *UseCase) Compute(in dto.FiscalCodeRequest) (*dto.FiscalCodeResponse, error) {
	code, err := uc.encoder.Compute(in.Name, in.Surname, in.Birthdate, in.Gender, in.Birthplace)
	if err != nil {
		return nil, err
	}
	return &dto.FiscalCodeResponse{
		FiscalCode: code,
		Name:       in.Name,
		Surname:    in.Surname,
		Birthdate:  in.Birthdate,
		Birthplace: in.Birthplace,
	}, nil
}

// LookupCityCode devuelve código catastral y provincia. Sirve para validar el lugar
// de nacimiento antes de llamar a Compute.
func (uc *UseCase) LookupCityCode(name string) (*dto.CityCodeResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, codicefiscale.NewFieldError(codicefiscale.ErrValidation, codicefiscale.FieldBirthplace, name)
	}
	m, err := uc.table.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &dto.CityCodeResponse{City: m.Name, Code: m.CadastralCode, Province: m.Province}, nil
}

// Card calcula el código y genera su tarjeta PDF. Devuelve los bytes y el nombre de fichero.
func (uc *UseCase) Card(ctx context.Context, in dto.FiscalCodeRequest) ([]byte, string, error) {
	if uc.cards == nil {
		return nil, "", ErrCardUnavailable
	}
	code, person, err := uc.encoder.ComputePerson(in.Name, in.Surname, in.Birthdate, in.Gender, in.Birthplace)
	if err != nil {
		return nil, "", err
	}
	place, err := uc.table.Lookup(person.Birthplace)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.cards.GenerateCard(ctx, Card{
		FiscalCode: code,
		GivenName:  person.GivenName,
		FamilyName: person.FamilyName,
		BirthDate:  person.BirthDate,
		Sex:        string(person.Sex),
		Birthplace: place.Name,
		Province:   place.Province,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar tarjeta: %w", err)
	}
	return pdf, code + ".pdf", nil
}

// Municipalities número de municipios disponibles.
func (uc *UseCase) Municipalities() int {
	return uc.table.Len()
}
