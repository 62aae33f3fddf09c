package entities

import (
	"fmt"
	"sync"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
	"github.com/shopspring/decimal"
)

// Account holds the identity of an account holder and the account balance.
// The zero value is an empty account with zero balance, ready to use.
// Account must not be copied after first use.
type Account struct {
	Number     AccountNumber
	FirstName  string
	LastName   string
	NationalID string

	mu      sync.Mutex
	balance decimal.Decimal
}

// NewAccount returns an account with the given identity and initial balance.
// The number is left unset: the caller assigns one, typically
// from GenerateAccountNumber.
func NewAccount(firstName, lastName, nationalID string, balance decimal.Decimal) *Account {
	return &Account{
		FirstName:  firstName,
		LastName:   lastName,
		NationalID: nationalID,
		balance:    balance,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit adds amount to the balance. Amount must be a positive number
// of whole cents.
func (a *Account) Deposit(amount decimal.Decimal) (*Outcome, error) {
	if !validAmount(amount) {
		return nil, fmt.Errorf("%w: deposit of %s", errs.ErrInvalidAmount, amount)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)

	return a.outcome(DEPOSIT, SUCCEEDED, amount), nil
}

// Withdraw takes amount from the balance if the balance covers it.
// Otherwise the balance is left untouched and the outcome reports
// insufficient funds; that is not an error. Amount must be a positive
// number of whole cents.
func (a *Account) Withdraw(amount decimal.Decimal) (*Outcome, error) {
	if !validAmount(amount) {
		return nil, fmt.Errorf("%w: withdrawal of %s", errs.ErrInvalidAmount, amount)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance.LessThan(amount) {
		return a.outcome(WITHDRAWAL, INSUFFICIENT_FUNDS, amount), nil
	}

	a.balance = a.balance.Sub(amount)

	return a.outcome(WITHDRAWAL, SUCCEEDED, amount), nil
}

// validAmount reports whether amount is positive and in whole cents.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(CentDigits))
}

// Must be called with a.mu held.
func (a *Account) outcome(typ OperationType, status OperationStatus, amount decimal.Decimal) *Outcome {
	return &Outcome{
		Type:      typ,
		Status:    status,
		Amount:    amount,
		Balance:   a.balance,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}
