// Package codicefiscale calcula el codice fiscale italiano (16 caracteres) de una persona física:
// apellido (3) + nombre (3) + año (2) + mes (1) + día/sexo (2) + código catastral (4) + control (1).
// No incluye la sustitución por omocodia.
package codicefiscale

import (
	"errors"
	"strings"
	"time"
)

// BirthDateLayout es el formato ISO 8601 aceptado para la fecha de nacimiento.
const BirthDateLayout = "2006-01-02"

// Sex sexo declarado en el registro civil.
type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

// ParseSex acepta exactamente "M" o "F".
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", NewFieldError(ErrInvalidSex, FieldGender, s)
}

// ParseBirthDate interpreta una fecha YYYY-MM-DD. Rechaza fechas imposibles (ej. 1990-02-30).
func ParseBirthDate(s string) (time.Time, error) {
	d, err := time.Parse(BirthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, NewFieldError(ErrInvalidDate, FieldBirthdate, s)
	}
	return d, nil
}

// Person datos de entrada del cálculo. Se construye por petición y no se guarda.
type Person struct {
	GivenName  string
	FamilyName string
	BirthDate  time.Time
	Sex        Sex
	Birthplace string
}

// PlaceResolver resuelve el código catastral (4 caracteres) de un municipio.
// Debe devolver un error que cumpla errors.Is(err, ErrMunicipalityNotFound) si no existe.
type PlaceResolver interface {
	CadastralCode(name string) (string, error)
}

// Encoder calcula códigos usando una tabla de municipios de solo lectura.
// Es seguro para uso concurrente si el PlaceResolver lo es.
type Encoder struct {
	places PlaceResolver
}

// NewEncoder crea el encoder.
func NewEncoder(places PlaceResolver) *Encoder {
	return &Encoder{places: places}
}

// Compute valida los cinco campos de texto y calcula el código.
func (e *Encoder) Compute(givenName, familyName, birthDate, sex, birthplace string) (string, error) {
	code, _, err := e.ComputePerson(givenName, familyName, birthDate, sex, birthplace)
	return code, err
}

// ComputePerson es Compute devolviendo además la Person ya validada (fecha y sexo
// interpretados, textos sin espacios alrededor).
func (e *Encoder) ComputePerson(givenName, familyName, birthDate, sex, birthplace string) (string, Person, error) {
	for _, f := range []struct{ name, value string }{
		{FieldName, givenName},
		{FieldSurname, familyName},
		{FieldBirthdate, birthDate},
		{FieldGender, sex},
		{FieldBirthplace, birthplace},
	} {
		if strings.TrimSpace(f.value) == "" {
			return "", Person{}, NewFieldError(ErrValidation, f.name, f.value)
		}
	}
	d, err := ParseBirthDate(birthDate)
	if err != nil {
		return "", Person{}, err
	}
	s, err := ParseSex(sex)
	if err != nil {
		return "", Person{}, err
	}
	p := Person{
		GivenName:  strings.TrimSpace(givenName),
		FamilyName: strings.TrimSpace(familyName),
		BirthDate:  d,
		Sex:        s,
		Birthplace: strings.TrimSpace(birthplace),
	}
	code, err := e.Encode(p)
	if err != nil {
		return "", Person{}, err
	}
	return code, p, nil
}

// Encode calcula el código de una persona ya validada.
func (e *Encoder) Encode(p Person) (string, error) {
	partial, err := e.Partial(p)
	if err != nil {
		return "", err
	}
	check, err := CheckCharacter(partial)
	if err != nil {
		return "", err
	}
	return partial + string(check), nil
}

// Partial devuelve los 15 primeros caracteres (sin el carácter de control).
func (e *Encoder) Partial(p Person) (string, error) {
	if p.BirthDate.IsZero() {
		return "", NewFieldError(ErrInvalidDate, FieldBirthdate, "")
	}
	month, err := MonthCode(int(p.BirthDate.Month()) - 1)
	if err != nil {
		return "", err
	}
	day, err := DayCode(p.BirthDate.Day(), p.Sex)
	if err != nil {
		return "", err
	}
	place, err := e.placeCode(p.Birthplace)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(PartialLen)
	b.WriteString(SurnameCode(p.FamilyName))
	b.WriteString(NameCode(p.GivenName))
	b.WriteString(YearCode(p.BirthDate.Year()))
	b.WriteByte(month)
	b.WriteString(day)
	b.WriteString(place)
	return b.String(), nil
}

func (e *Encoder) placeCode(birthplace string) (string, error) {
	name := strings.TrimSpace(birthplace)
	if name == "" {
		return "", NewFieldError(ErrValidation, FieldBirthplace, birthplace)
	}
	if e.places == nil {
		return "", NewFieldError(ErrMunicipalityNotFound, FieldBirthplace, name)
	}
	code, err := e.places.CadastralCode(name)
	if err != nil {
		if errors.Is(err, ErrMunicipalityNotFound) {
			return "", NewFieldError(ErrMunicipalityNotFound, FieldBirthplace, name)
		}
		return "", err
	}
	code = strings.ToUpper(code)
	if len(code) != PlaceLen {
		return "", NewFieldError(ErrValidation, "cadastral_code", code)
	}
	return code, nil
}
