package repositories

import (
	"context"

	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/shopspring/decimal"
)

// AccountRepository stores accounts and their operations history.
type AccountRepository interface {
	// CreateAccount stores a new account. Returns errs.ErrDataConflict
	// if the account number is already taken.
	CreateAccount(context.Context, *entities.Account) error
	GetAccount(context.Context, entities.AccountNumber) (*entities.Account, error)
	// GetAccountForUpdate locks the account until the surrounding transaction ends.
	GetAccountForUpdate(context.Context, entities.AccountNumber) (*entities.Account, error)
	UpdateBalance(context.Context, entities.AccountNumber, decimal.Decimal) error
	SaveAccountOperation(context.Context, *entities.Operation) error
	GetOperations(context.Context, entities.AccountNumber) ([]*entities.Operation, error)
}
