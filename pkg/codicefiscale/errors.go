package codicefiscale

import (
	"errors"
	"fmt"
)

// Tipos de error del cálculo. Se comparan con errors.Is sobre el *FieldError devuelto.
var (
	ErrValidation           = errors.New("codicefiscale: dato inválido")
	ErrInvalidDate          = errors.New("codicefiscale: fecha de nacimiento inválida")
	ErrInvalidSex           = errors.New("codicefiscale: sexo inválido")
	ErrMunicipalityNotFound = errors.New("codicefiscale: municipio no encontrado")
)

// Nombres de campo de FieldError. Coinciden con los campos JSON de la petición y con los
// flags de la CLI, y son los mismos en todas las capas.
const (
	FieldName       = "name"
	FieldSurname    = "surname"
	FieldBirthdate  = "birthdate"
	FieldGender     = "gender"
	FieldBirthplace = "birthplace"
)

// FieldError describe el campo y el valor que provocaron el fallo.
type FieldError struct {
	Kind  error
	Field string
	Value string
}

// NewFieldError construye un FieldError del tipo indicado.
func NewFieldError(kind error, field, value string) *FieldError {
	return &FieldError{Kind: kind, Field: field, Value: value}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s=%q", e.Kind, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Kind }
