package params

import "github.com/shopspring/decimal"

// OpenAccount defines parameters for opening an account.
type OpenAccount struct {
	FirstName  string
	LastName   string
	NationalID string
	Balance    decimal.Decimal
}
