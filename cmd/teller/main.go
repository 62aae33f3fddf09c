// Command teller applies deposits and withdrawals to a single account
// and prints the outcome of each one.
//
//	teller -first John -last Doe -balance 100 withdraw:50 withdraw:150 deposit:25.5
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/shopspring/decimal"
)

func main() {
	firstName := flag.String("first", "", "account holder first name")
	lastName := flag.String("last", "", "account holder last name")
	nationalID := flag.String("id", "", "account holder national ID")
	balance := flag.String("balance", "0", "initial balance")
	flag.Parse()

	initial, err := decimal.NewFromString(*balance)
	if err != nil {
		log.Fatalf("invalid balance %q: %s", *balance, err)
	}

	account := entities.NewAccount(*firstName, *lastName, *nationalID, initial)
	account.Number = entities.GenerateAccountNumber()

	if err = run(os.Stdout, account, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, account *entities.Account, steps []string) error {
	fmt.Fprintf(w, "Account %s\n", account.Number)

	for _, step := range steps {
		kind, amount, found := strings.Cut(step, ":")
		if !found {
			return fmt.Errorf("step %q: want <deposit|withdraw>:<amount>", step)
		}

		sum, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("step %q: %w", step, err)
		}

		var outcome *entities.Outcome
		switch kind {
		case "deposit":
			outcome, err = account.Deposit(sum)
		case "withdraw":
			outcome, err = account.Withdraw(sum)
		default:
			return fmt.Errorf("step %q: unknown operation %q", step, kind)
		}
		if err != nil {
			return fmt.Errorf("step %q: %w", step, err)
		}

		fmt.Fprintln(w, outcome.Message())
	}

	return nil
}
