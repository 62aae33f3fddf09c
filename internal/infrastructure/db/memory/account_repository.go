// Package memory keeps accounts in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/KretovDmitry/bank-account/internal/domain/repositories"
	"github.com/shopspring/decimal"
)

type accountRecord struct {
	firstName  string
	lastName   string
	nationalID string
	balance    decimal.Decimal
}

type AccountRepository struct {
	accounts   map[entities.AccountNumber]accountRecord
	operations map[entities.AccountNumber][]entities.Operation
	mu         sync.RWMutex
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:   make(map[entities.AccountNumber]accountRecord),
		operations: make(map[entities.AccountNumber][]entities.Operation),
	}
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) CreateAccount(_ context.Context, account *entities.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.accounts[account.Number]; found {
		return fmt.Errorf("%w: account number %s", errs.ErrDataConflict, account.Number)
	}

	r.accounts[account.Number] = accountRecord{
		firstName:  account.FirstName,
		lastName:   account.LastName,
		nationalID: account.NationalID,
		balance:    account.Balance(),
	}

	return nil
}

func (r *AccountRepository) GetAccount(_ context.Context, number entities.AccountNumber) (*entities.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, found := r.accounts[number]
	if !found {
		return nil, fmt.Errorf("%w: account %s", errs.ErrNotFound, number)
	}

	account := entities.NewAccount(rec.firstName, rec.lastName, rec.nationalID, rec.balance)
	account.Number = number

	return account, nil
}

// GetAccountForUpdate relies on Transactor for exclusive access.
func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, number entities.AccountNumber) (*entities.Account, error) {
	return r.GetAccount(ctx, number)
}

func (r *AccountRepository) UpdateBalance(_ context.Context, number entities.AccountNumber, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, found := r.accounts[number]
	if !found {
		return fmt.Errorf("%w: account %s", errs.ErrNotFound, number)
	}

	rec.balance = balance
	r.accounts[number] = rec

	return nil
}

func (r *AccountRepository) SaveAccountOperation(_ context.Context, op *entities.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.accounts[op.Number]; !found {
		return fmt.Errorf("%w: account %s", errs.ErrNotFound, op.Number)
	}

	saved := *op
	saved.ProcessedAt = time.Now()
	r.operations[op.Number] = append(r.operations[op.Number], saved)

	return nil
}

// GetOperations returns the account history, newest first.
func (r *AccountRepository) GetOperations(_ context.Context, number entities.AccountNumber) ([]*entities.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.operations[number]
	if len(history) == 0 {
		return nil, errs.ErrNotFound
	}

	operations := make([]*entities.Operation, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		op := history[i]
		operations = append(operations, &op)
	}

	return operations, nil
}

// Transactor serializes transactions. There is no rollback:
// changes made before fn fails are kept. Do must not be nested.
type Transactor struct {
	mu sync.Mutex
}

func (t *Transactor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(ctx)
}
