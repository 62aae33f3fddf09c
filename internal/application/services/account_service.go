package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
	"github.com/KretovDmitry/bank-account/internal/application/interfaces"
	"github.com/KretovDmitry/bank-account/internal/application/params"
	"github.com/KretovDmitry/bank-account/internal/config"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/KretovDmitry/bank-account/internal/domain/repositories"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/shopspring/decimal"
)

// Transactor runs fn within a single transaction.
// *manager.Manager of go-transaction-manager satisfies it.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type AccountService struct {
	repo     repositories.AccountRepository
	trm      Transactor
	generate entities.AccountNumberGenerator
	attempts int
	logger   logger.Logger
}

// NewAccountService creates the service. A nil generator falls back
// to entities.GenerateAccountNumber.
func NewAccountService(
	accountRepository repositories.AccountRepository,
	trm Transactor,
	generate entities.AccountNumberGenerator,
	logger logger.Logger,
	config *config.Config,
) (*AccountService, error) {
	if accountRepository == nil {
		return nil, errors.New("nil dependency: account repository")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	if logger == nil {
		return nil, errors.New("nil dependency: logger")
	}
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	if generate == nil {
		generate = entities.GenerateAccountNumber
	}
	return &AccountService{
		repo:     accountRepository,
		trm:      trm,
		generate: generate,
		attempts: max(config.AccountNumberAttempts, 1),
		logger:   logger,
	}, nil
}

var _ interfaces.AccountService = (*AccountService)(nil)

// Open stores a new account under a freshly generated number.
// Numbers already in use are redrawn.
func (s *AccountService) Open(ctx context.Context, params *params.OpenAccount) (*entities.Account, error) {
	account := entities.NewAccount(params.FirstName, params.LastName, params.NationalID, params.Balance)

	for attempt := 1; attempt <= s.attempts; attempt++ {
		account.Number = s.generate()

		err := s.repo.CreateAccount(ctx, account)
		if err == nil {
			s.logger.With(ctx, "account", account.Number.String()).
				Infof("%s %s opened an account. Current Balance $%s",
					account.FirstName, account.LastName, account.Balance().StringFixed(2))
			return account, nil
		}
		if !errors.Is(err, errs.ErrDataConflict) {
			return nil, fmt.Errorf("create account: %w", err)
		}

		s.logger.With(ctx, "account", account.Number.String(), "attempt", attempt).
			Debug("account number is taken")
	}

	return nil, fmt.Errorf("%w: no free account number after %d attempts", errs.ErrDataConflict, s.attempts)
}

func (s *AccountService) GetAccount(ctx context.Context, number entities.AccountNumber) (*entities.Account, error) {
	account, err := s.repo.GetAccount(ctx, number)
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *AccountService) Deposit(ctx context.Context, params *params.Operation) (*entities.Outcome, error) {
	return s.apply(ctx, params, (*entities.Account).Deposit)
}

// Withdraw reports insufficient funds in the outcome, not as an error.
func (s *AccountService) Withdraw(ctx context.Context, params *params.Operation) (*entities.Outcome, error) {
	return s.apply(ctx, params, (*entities.Account).Withdraw)
}

// GetOperations returns the account history, newest first.
// An account without history gets an empty list.
func (s *AccountService) GetOperations(ctx context.Context, number entities.AccountNumber) ([]*entities.Operation, error) {
	if _, err := s.repo.GetAccount(ctx, number); err != nil {
		return nil, err
	}

	operations, err := s.repo.GetOperations(ctx, number)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return []*entities.Operation{}, nil
		}
		return nil, err
	}

	return operations, nil
}

// GenerateAccountNumber draws a number without reserving it.
func (s *AccountService) GenerateAccountNumber() entities.AccountNumber {
	return s.generate()
}

type accountOperation func(*entities.Account, decimal.Decimal) (*entities.Outcome, error)

func (s *AccountService) apply(ctx context.Context, params *params.Operation, op accountOperation) (*entities.Outcome, error) {
	var outcome *entities.Outcome

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		// Lock the account for the rest of the transaction.
		account, err := s.repo.GetAccountForUpdate(ctx, params.Number)
		if err != nil {
			return err
		}

		outcome, err = op(account, params.Sum)
		if err != nil {
			return err
		}

		if outcome.Succeeded() {
			if err = s.repo.UpdateBalance(ctx, params.Number, account.Balance()); err != nil {
				return err
			}
		}

		// Write the attempt to the operations history.
		return s.repo.SaveAccountOperation(ctx, entities.NewOperation(params.Number, outcome))
	})
	if err != nil {
		return nil, err
	}

	s.logger.With(ctx, "account", params.Number.String(), "status", string(outcome.Status)).
		Info(outcome.Message())

	return outcome, nil
}
