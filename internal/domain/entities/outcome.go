package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OperationStatus string

const (
	SUCCEEDED          OperationStatus = "SUCCEEDED"
	INSUFFICIENT_FUNDS OperationStatus = "INSUFFICIENT_FUNDS"
)

// Outcome describes the result of a single deposit or withdrawal.
type Outcome struct {
	Type      OperationType
	Status    OperationStatus
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	FirstName string
	LastName  string
}

func (o *Outcome) Succeeded() bool {
	return o.Status == SUCCEEDED
}

// Message renders the outcome as a human readable status line.
func (o *Outcome) Message() string {
	if !o.Succeeded() {
		return fmt.Sprintf("Unable to withdraw %s for %s %s due to insufficient funds.",
			money(o.Amount), o.FirstName, o.LastName)
	}

	verb := "deposited"
	if o.Type == WITHDRAWAL {
		verb = "withdrew"
	}

	return fmt.Sprintf("%s %s %s $%s. Current Balance $%s",
		o.FirstName, o.LastName, verb, money(o.Amount), money(o.Balance))
}

// CentDigits is the number of fractional digits an amount may carry.
const CentDigits = 2

func money(d decimal.Decimal) string {
	return d.StringFixed(CentDigits)
}
