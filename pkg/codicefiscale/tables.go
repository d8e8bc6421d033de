package codicefiscale

// Longitudes de cada segmento del codice fiscale.
const (
	SurnameLen = 3
	NameLen    = 3
	YearLen    = 2
	MonthLen   = 1
	DayLen     = 2
	PlaceLen   = 4

	// PartialLen es la longitud del código sin el carácter de control.
	PartialLen = SurnameLen + NameLen + YearLen + MonthLen + DayLen + PlaceLen
	// CodeLen es la longitud total del codice fiscale.
	CodeLen = PartialLen + 1
)

// femaleDayOffset se suma al día de nacimiento cuando el sexo es femenino.
const femaleDayOffset = 40

// padChar completa apellido o nombre con menos de 3 letras.
const padChar = 'X'

// monthCodes: índice 0 = enero. Las letras G, I, N, O, Q, U, V, W, X, Y, Z no se usan.
var monthCodes = [12]byte{'A', 'B', 'C', 'D', 'E', 'H', 'L', 'M', 'P', 'R', 'S', 'T'}

// Tablas de conversión del carácter de control (DM 23/12/1976), indexadas por charIndex:
// 0–9 para '0'–'9', 10–35 para 'A'–'Z'.
// oddWeights se aplica a las posiciones 1ª, 3ª, 5ª… (índices 0, 2, 4… en base 0).
var oddWeights = [36]int{
	// 0  1  2  3  4   5   6   7   8   9
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21,
	// A  B  C  D  E   F   G   H   I   J   K  L   M   N   O  P  Q  R   S   T   U   V   W   X   Y   Z
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21, 2, 4, 18, 20, 11, 3, 6, 8, 12, 14, 16, 10, 22, 25, 24, 23,
}

// evenWeights se aplica a las posiciones 2ª, 4ª, 6ª… (índices 1, 3, 5… en base 0).
var evenWeights = [36]int{
	// 0  1  2  3  4  5  6  7  8  9
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	// A  B  C  D  E  F  G  H  I  J   K   L   M   N   O   P   Q   R   S   T   U   V   W   X   Y   Z
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25,
}

// charIndex devuelve la posición de c en las tablas de pesos.
func charIndex(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return 10 + int(c-'A'), true
	default:
		return 0, false
	}
}
