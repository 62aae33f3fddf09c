package request

import "github.com/shopspring/decimal"

// OpenAccount defines parameters for opening an account.
type OpenAccount struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	NationalID string          `json:"national_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// Operation defines parameters for a deposit or a withdrawal.
type Operation struct {
	Amount decimal.Decimal `json:"amount"`
}
