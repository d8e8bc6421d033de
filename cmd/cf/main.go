// cf calcula el codice fiscale sin levantar el servidor HTTP.
//
//	cf compute --name Mario --surname Rossi --birthdate 1985-04-15 --gender M --birthplace Roma
//	cf lookup "Roma"
//	cf comuni
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
