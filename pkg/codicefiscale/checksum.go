package codicefiscale

import "fmt"

// CheckCharacter calcula el carácter de control sobre los 15 caracteres del código parcial.
// Posiciones pares en base 0 (1ª, 3ª…) usan la tabla de impares; las impares, la de pares.
func CheckCharacter(partial string) (byte, error) {
	if len(partial) != PartialLen {
		return 0, fmt.Errorf("codicefiscale: el código parcial debe tener %d caracteres, se recibieron %d", PartialLen, len(partial))
	}
	var sum int
	for i := 0; i < len(partial); i++ {
		idx, ok := charIndex(partial[i])
		if !ok {
			return 0, fmt.Errorf("codicefiscale: carácter %q no permitido en la posición %d", partial[i], i)
		}
		if i%2 == 0 {
			sum += oddWeights[idx]
		} else {
			sum += evenWeights[idx]
		}
	}
	return byte('A' + sum%26), nil
}
