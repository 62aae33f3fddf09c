package params

import (
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// Operation defines parameters for a deposit or a withdrawal.
type Operation struct {
	Number entities.AccountNumber
	Sum    decimal.Decimal
}

func NewOperation(number entities.AccountNumber, sum decimal.Decimal) *Operation {
	return &Operation{Number: number, Sum: sum}
}
