package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/KretovDmitry/bank-account/internal/domain/repositories"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewAccountRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*AccountRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &AccountRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) CreateAccount(ctx context.Context, account *entities.Account) error {
	const query = `
		INSERT INTO accounts (number, first_name, last_name, national_id, balance)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		account.Number,
		account.FirstName,
		account.LastName,
		account.NationalID,
		account.Balance(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: account number %s", errs.ErrDataConflict, account.Number)
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *AccountRepository) GetAccount(ctx context.Context, number entities.AccountNumber) (*entities.Account, error) {
	const query = `
		SELECT first_name, last_name, national_id, balance
		FROM accounts WHERE number = $1;
	`

	return r.getAccount(ctx, query, number)
}

func (r *AccountRepository) GetAccountForUpdate(ctx context.Context, number entities.AccountNumber) (*entities.Account, error) {
	const query = `
		SELECT first_name, last_name, national_id, balance
		FROM accounts WHERE number = $1
		FOR UPDATE;
	`

	return r.getAccount(ctx, query, number)
}

func (r *AccountRepository) getAccount(ctx context.Context, query string, number entities.AccountNumber) (*entities.Account, error) {
	var (
		firstName, lastName, nationalID string
		balance                         decimal.Decimal
	)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, number).Scan(
		&firstName,
		&lastName,
		&nationalID,
		&balance,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", errs.ErrNotFound, number)
		}
		return nil, err
	}

	account := entities.NewAccount(firstName, lastName, nationalID, balance)
	account.Number = number

	return account, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, number entities.AccountNumber, balance decimal.Decimal) error {
	const query = "UPDATE accounts SET balance = $1 WHERE number = $2"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, balance, number)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: account %s", errs.ErrNotFound, number)
	}

	return nil
}

func (r *AccountRepository) SaveAccountOperation(ctx context.Context, op *entities.Operation) error {
	const query = `
		INSERT INTO account_operations (account_number, operation, status, sum, balance)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).
		ExecContext(ctx, query, op.Number, op.Type, op.Status, op.Sum, op.Balance)
	if err != nil {
		return err
	}

	return nil
}

func (r *AccountRepository) GetOperations(ctx context.Context, number entities.AccountNumber) ([]*entities.Operation, error) {
	const query = `
		SELECT operation, status, sum, balance, processed_at FROM account_operations
		WHERE account_number = $1
		ORDER BY processed_at DESC, id DESC;
	`

	operations := make([]*entities.Operation, 0)

	rows, err := r.getter.DefaultTrOrDB(ctx, r.db).QueryContext(ctx, query, number)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err = rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	for rows.Next() {
		op := &entities.Operation{Number: number}
		err = rows.Scan(
			&op.Type,
			&op.Status,
			&op.Sum,
			&op.Balance,
			&op.ProcessedAt,
		)
		if err != nil {
			return nil, err
		}

		operations = append(operations, op)
	}

	// Rows.Err will report the last error encountered by Rows.Scan.
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(operations) == 0 {
		return nil, errs.ErrNotFound
	}

	return operations, nil
}
