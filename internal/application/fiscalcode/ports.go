package fiscalcode

import (
	"context"
	"time"
)

// Card datos impresos en la tarjeta PDF del codice fiscale.
type Card struct {
	FiscalCode string
	GivenName  string
	FamilyName string
	BirthDate  time.Time
	Sex        string
	Birthplace string
	Province   string
}

// CardGenerator genera la representación PDF de un codice fiscale.
type CardGenerator interface {
	GenerateCard(ctx context.Context, card Card) ([]byte, error)
}
