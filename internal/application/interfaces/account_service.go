package interfaces

import (
	"context"

	"github.com/KretovDmitry/bank-account/internal/application/params"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
)

// AccountService represents all service actions.
type AccountService interface {
	Open(context.Context, *params.OpenAccount) (*entities.Account, error)
	GetAccount(context.Context, entities.AccountNumber) (*entities.Account, error)
	Deposit(context.Context, *params.Operation) (*entities.Outcome, error)
	Withdraw(context.Context, *params.Operation) (*entities.Outcome, error)
	GetOperations(context.Context, entities.AccountNumber) ([]*entities.Operation, error)
	GenerateAccountNumber() entities.AccountNumber
}
