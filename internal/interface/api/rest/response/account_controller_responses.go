package response

import (
	"time"

	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// Account never exposes the national ID.
type Account struct {
	Number    entities.AccountNumber `json:"number"`
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	Balance   decimal.Decimal        `json:"balance"`
}

func NewAccount(e *entities.Account) *Account {
	return &Account{
		Number:    e.Number,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Balance:   e.Balance(),
	}
}

type Outcome struct {
	Operation entities.OperationType   `json:"operation"`
	Status    entities.OperationStatus `json:"status"`
	Amount    decimal.Decimal          `json:"amount"`
	Balance   decimal.Decimal          `json:"balance"`
	Message   string                   `json:"message"`
}

func NewOutcome(e *entities.Outcome) *Outcome {
	return &Outcome{
		Operation: e.Type,
		Status:    e.Status,
		Amount:    e.Amount,
		Balance:   e.Balance,
		Message:   e.Message(),
	}
}

type GetOperations struct {
	Operation   entities.OperationType   `json:"operation"`
	Status      entities.OperationStatus `json:"status"`
	Sum         decimal.Decimal          `json:"sum"`
	Balance     decimal.Decimal          `json:"balance"`
	ProcessedAt time.Time                `json:"processed_at"`
}

func NewGetOperations(e *entities.Operation) *GetOperations {
	return &GetOperations{
		Operation:   e.Type,
		Status:      e.Status,
		Sum:         e.Sum,
		Balance:     e.Balance,
		ProcessedAt: e.ProcessedAt,
	}
}

type AccountNumber struct {
	Number entities.AccountNumber `json:"number"`
}
