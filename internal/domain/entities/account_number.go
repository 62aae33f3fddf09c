package entities

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
)

// Bounds of a valid account number, both inclusive.
const (
	MinAccountNumber AccountNumber = 1_000_000_000
	MaxAccountNumber AccountNumber = 9_999_999_999
)

type AccountNumber int64

// AccountNumberGenerator issues account numbers. Issued numbers are not
// guaranteed to be unique.
type AccountNumberGenerator func() AccountNumber

// GenerateAccountNumber draws a uniformly random account number.
// Collisions with previously issued numbers are possible.
func GenerateAccountNumber() AccountNumber {
	return MinAccountNumber + AccountNumber(rand.Int64N(int64(MaxAccountNumber-MinAccountNumber)+1))
}

// NewAccountNumber parses num in canonical form: plain digits, no sign
// or leading zeros.
func NewAccountNumber(num string) (AccountNumber, error) {
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != num {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidAccountNumber, num)
	}

	number := AccountNumber(n)
	if !number.Valid() {
		return 0, fmt.Errorf("%w: %d out of range", errs.ErrInvalidAccountNumber, n)
	}

	return number, nil
}

func (n AccountNumber) Valid() bool {
	return n >= MinAccountNumber && n <= MaxAccountNumber
}

func (n AccountNumber) String() string {
	return strconv.FormatInt(int64(n), 10)
}
