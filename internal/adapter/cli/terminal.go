// Package cli renders a teller session as an interactive text menu.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goatm/internal/domain"
	"github.com/iho/goatm/internal/usecase"
)

// Session is the subset of usecase.SessionUseCase the terminal drives.
type Session interface {
	State() usecase.SessionState
	Authenticate(ctx context.Context, id, pin string) error
	Balance(ctx context.Context) (decimal.Decimal, error)
	History(ctx context.Context) ([]domain.Entry, error)
	Deposit(ctx context.Context, amount decimal.Decimal) (*domain.Entry, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (*domain.Entry, error)
	ValidateTransferTarget(ctx context.Context, targetID string) error
	Transfer(ctx context.Context, targetID string, amount decimal.Decimal) (*domain.Entry, error)
	ChangePin(ctx context.Context, oldPin, newPin string) error
	Exit(confirmed bool) bool
	DeclineRetry()
}

// Config holds presentation settings.
type Config struct {
	CurrencySymbol string
	Location       *time.Location
	// AccountIDs are listed in the transfer prompt.
	AccountIDs []string
}

type menuItem struct {
	key   string
	label string
	run   func(ctx context.Context)
}

// Terminal reads menu choices from in and writes human-readable text to out.
type Terminal struct {
	session  Session
	in       *bufio.Scanner
	out      io.Writer
	currency string
	location *time.Location
	targets  []string
	items    []menuItem
}

// NewTerminal creates a Terminal over session.
func NewTerminal(session Session, in io.Reader, out io.Writer, cfg Config) *Terminal {
	t := &Terminal{
		session:  session,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: cfg.CurrencySymbol,
		location: cfg.Location,
		targets:  cfg.AccountIDs,
	}

	if t.currency == "" {
		t.currency = "$"
	}

	if t.location == nil {
		t.location = time.Local
	}

	t.items = []menuItem{
		{key: "1", label: "Check Balance", run: t.checkBalance},
		{key: "2", label: "Deposit Money", run: t.deposit},
		{key: "3", label: "Withdraw Money", run: t.withdraw},
		{key: "4", label: "Transaction History", run: t.history},
		{key: "5", label: "Change PIN", run: t.changePin},
		{key: "6", label: "Transfer Money", run: t.transfer},
		{key: "7", label: "Exit", run: t.exit},
	}

	return t
}

// Run drives the session until it terminates. End of input terminates the
// session; the scanner's read error, if any, is returned.
func (t *Terminal) Run(ctx context.Context) error {
	for t.session.State() != usecase.StateTerminated {
		if err := ctx.Err(); err != nil {
			t.session.Exit(true)
			return err
		}

		switch t.session.State() {
		case usecase.StateLoggedOut:
			t.login(ctx)
		case usecase.StateLoggedIn:
			t.menu(ctx)
		}
	}

	return t.in.Err()
}

func (t *Terminal) login(ctx context.Context) {
	id, ok := t.readLine("Enter User ID: ")
	if !ok {
		t.hangUp()
		return
	}

	pin, ok := t.readLine("Enter PIN: ")
	if !ok {
		t.hangUp()
		return
	}

	if err := t.session.Authenticate(ctx, id, pin); err != nil {
		t.printf("\n%s\n\n", failureMessage(usecase.OperationLogin, err))

		retry, ok := t.readLine("Try again? (y/n): ")
		if !ok || !isYes(retry) {
			t.println("Exiting program.")
			t.session.DeclineRetry()
		}
		return
	}

	t.println("\nLogin successful!\n")
}

func (t *Terminal) menu(ctx context.Context) {
	t.println("\n--- ATM Main Menu ---")
	for _, item := range t.items {
		t.printf("%s. %s\n", item.key, item.label)
	}

	choice, ok := t.readLine("Enter your choice: ")
	if !ok {
		t.hangUp()
		return
	}

	choice = strings.TrimSpace(choice)
	for _, item := range t.items {
		if item.key == choice {
			item.run(ctx)
			return
		}
	}

	t.println("Invalid choice. Please try again.")
}

func (t *Terminal) checkBalance(ctx context.Context) {
	balance, err := t.session.Balance(ctx)
	if err != nil {
		t.println(failureMessage(usecase.OperationBalance, err))
		return
	}

	t.printf("Your current balance is: %s\n", t.money(balance))
}

func (t *Terminal) deposit(ctx context.Context) {
	amount, ok := t.readAmount("Enter deposit amount: ")
	if !ok {
		return
	}

	if _, err := t.session.Deposit(ctx, amount); err != nil {
		t.println(failureMessage(usecase.OperationDeposit, err))
		return
	}

	t.printf("%s deposited successfully.\n", t.money(amount))
}

func (t *Terminal) withdraw(ctx context.Context) {
	amount, ok := t.readAmount("Enter withdrawal amount: ")
	if !ok {
		return
	}

	if _, err := t.session.Withdraw(ctx, amount); err != nil {
		t.println(failureMessage(usecase.OperationWithdraw, err))
		return
	}

	t.printf("%s withdrawn successfully.\n", t.money(amount))
}

func (t *Terminal) history(ctx context.Context) {
	entries, err := t.session.History(ctx)
	if err != nil {
		t.println(failureMessage(usecase.OperationHistory, err))
		return
	}

	t.println("Transaction History:")
	if len(entries) == 0 {
		t.println("No transactions yet.")
		return
	}

	for _, e := range entries {
		t.println(t.formatEntry(e))
	}
}

func (t *Terminal) changePin(ctx context.Context) {
	oldPin, ok := t.readLine("Enter current PIN: ")
	if !ok {
		t.hangUp()
		return
	}

	newPin, ok := t.readLine("Enter new PIN: ")
	if !ok {
		t.hangUp()
		return
	}

	if err := t.session.ChangePin(ctx, oldPin, newPin); err != nil {
		t.println(failureMessage(usecase.OperationChangePin, err))
		return
	}

	t.println("PIN changed successfully. Please login again with your new PIN.")
	t.println("You must login again with your new PIN.")
}

func (t *Terminal) transfer(ctx context.Context) {
	prompt := "Enter the User ID to transfer to: "
	if len(t.targets) > 0 {
		prompt = fmt.Sprintf("Enter the User ID to transfer to (%s): ", strings.Join(t.targets, " or "))
	}

	targetID, ok := t.readLine(prompt)
	if !ok {
		t.hangUp()
		return
	}

	if err := t.session.ValidateTransferTarget(ctx, targetID); err != nil {
		t.println(failureMessage(usecase.OperationTransfer, err))
		return
	}

	amount, ok := t.readAmount("Enter amount to transfer: ")
	if !ok {
		return
	}

	if _, err := t.session.Transfer(ctx, targetID, amount); err != nil {
		t.println(failureMessage(usecase.OperationTransfer, err))
		return
	}

	t.printf("%s transferred successfully to User %s.\n", t.money(amount), targetID)
}

func (t *Terminal) exit(ctx context.Context) {
	confirm, ok := t.readLine("Are you sure you want to exit? (y/n): ")
	if !ok {
		t.hangUp()
		return
	}

	if isYes(confirm) {
		t.session.Exit(true)
		t.println("Thank you for using the ATM. Goodbye!")
		return
	}

	t.session.Exit(false)
	t.println("Returning to main menu.")
}

// readAmount prompts for an amount. Non-numeric input is reported and
// yields ok == false without touching the session.
func (t *Terminal) readAmount(prompt string) (decimal.Decimal, bool) {
	line, ok := t.readLine(prompt)
	if !ok {
		t.hangUp()
		return decimal.Zero, false
	}

	amount, err := domain.ParseAmount(line)
	if err != nil {
		t.println(failureMessage("", err))
		return decimal.Zero, false
	}

	return amount, true
}

func (t *Terminal) readLine(prompt string) (string, bool) {
	fmt.Fprint(t.out, prompt)

	if !t.in.Scan() {
		return "", false
	}

	return strings.TrimSuffix(t.in.Text(), "\r"), true
}

// hangUp ends the session when input is exhausted.
func (t *Terminal) hangUp() {
	t.println("")
	t.session.Exit(true)
}

func (t *Terminal) println(s string) {
	fmt.Fprintln(t.out, s)
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func isYes(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) == "y"
}
