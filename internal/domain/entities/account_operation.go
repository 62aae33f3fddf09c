package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OperationType string

const (
	DEPOSIT    OperationType = "DEPOSIT"
	WITHDRAWAL OperationType = "WITHDRAWAL"
)

// Operation is a history record of a deposit or withdrawal attempt.
type Operation struct {
	Number      AccountNumber
	Type        OperationType
	Status      OperationStatus
	Sum         decimal.Decimal
	Balance     decimal.Decimal
	ProcessedAt time.Time
}

func NewOperation(number AccountNumber, o *Outcome) *Operation {
	return &Operation{
		Number:  number,
		Type:    o.Type,
		Status:  o.Status,
		Sum:     o.Amount,
		Balance: o.Balance,
	}
}
