package codicefiscale

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName deja solo letras A–Z en mayúscula. Las letras acentuadas pasan a su
// letra base (NICOLÒ → NICOLO); espacios, apóstrofos y cualquier otro símbolo se descartan.
func NormalizeName(s string) string {
	// El transformer guarda estado: uno nuevo por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isVowel(c byte) bool {
	switch c {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// splitLetters separa consonantes y vocales manteniendo el orden original.
func splitLetters(normalized string) (consonants, vowels []byte) {
	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		if isVowel(c) {
			vowels = append(vowels, c)
		} else {
			consonants = append(consonants, c)
		}
	}
	return consonants, vowels
}

// fill completa code hasta 3 letras con vocales y luego con 'X'.
func fill(code, vowels []byte) string {
	for _, v := range vowels {
		if len(code) >= 3 {
			break
		}
		code = append(code, v)
	}
	for len(code) < 3 {
		code = append(code, padChar)
	}
	return string(code[:3])
}

// SurnameCode: tres primeras consonantes del apellido, luego vocales, luego 'X'.
func SurnameCode(surname string) string {
	consonants, vowels := splitLetters(NormalizeName(surname))
	if len(consonants) > 3 {
		consonants = consonants[:3]
	}
	return fill(append([]byte(nil), consonants...), vowels)
}

// NameCode: con más de 3 consonantes se toman la 1ª, 3ª y 4ª (se salta la 2ª);
// si no, todas las consonantes, luego vocales, luego 'X'.
func NameCode(name string) string {
	consonants, vowels := splitLetters(NormalizeName(name))
	var code []byte
	if len(consonants) > 3 {
		code = []byte{consonants[0], consonants[2], consonants[3]}
	} else {
		code = append(code, consonants...)
	}
	return fill(code, vowels)
}

// YearCode devuelve las dos últimas cifras del año (1985 → "85", 2004 → "04").
func YearCode(year int) string {
	if year < 0 {
		year = -year
	}
	return fmt.Sprintf("%02d", year%100)
}

// MonthCode convierte el índice de mes (0 = enero) en su letra.
func MonthCode(monthIndex int) (byte, error) {
	if monthIndex < 0 || monthIndex >= len(monthCodes) {
		return 0, NewFieldError(ErrInvalidDate, FieldBirthdate, fmt.Sprint(monthIndex))
	}
	return monthCodes[monthIndex], nil
}

// DayCode formatea el día con dos cifras sumando 40 para el sexo femenino.
func DayCode(day int, sex Sex) (string, error) {
	if day < 1 || day > 31 {
		return "", NewFieldError(ErrInvalidDate, FieldBirthdate, fmt.Sprint(day))
	}
	switch sex {
	case Male:
	case Female:
		day += femaleDayOffset
	default:
		return "", NewFieldError(ErrInvalidSex, FieldGender, string(sex))
	}
	return fmt.Sprintf("%02d", day), nil
}
