package console

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-file-ledger/pkg/credential"
)

func newLedger(t *testing.T) *usecase.Ledger {
	t.Helper()
	l, err := usecase.NewLedger(context.Background(), memory.NewStore(), credential.SHA256{},
		usecase.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func run(t *testing.T, core usecase.AccountService, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := NewConsole(core, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	return out.String()
}

func TestCreateAccount(t *testing.T) {
	l := newLedger(t)
	out := run(t, l, "1", "Alice", "25", "a@x.com", "1234", "0")

	if !strings.Contains(out, "Account created successfully.") {
		t.Fatalf("missing success message:\n%s", out)
	}
	if !strings.Contains(out, "balance : 0.00") {
		t.Fatalf("missing account details:\n%s", out)
	}
	if l.Len() != 1 {
		t.Fatalf("len=%d want=1", l.Len())
	}
}

func TestCreateAccountRejected(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "underage", lines: []string{"1", "Kid", "17", "k@x.com", "1234", "0"}, want: "Error: Account creation failed (age must be at least 18)."},
		{name: "short pin", lines: []string{"1", "Bob", "30", "b@x.com", "123", "0"}, want: "Error: PIN must be 4 digits."},
		{name: "age not a number", lines: []string{"1", "Bob", "thirty", "b@x.com", "1234", "0"}, want: "Error: Age must be a whole number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)
			out := run(t, l, tt.lines...)
			if !strings.Contains(out, tt.want) {
				t.Fatalf("want %q in:\n%s", tt.want, out)
			}
			if l.Len() != 0 {
				t.Fatalf("len=%d want=0", l.Len())
			}
		})
	}
}

func TestMoneyAndDetails(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	view, err := l.CreateAccount(ctx, usecase.CreateAccountCommand{Name: "Alice", Age: 25, Email: "a@x.com", PIN: "1234"})
	if err != nil {
		t.Fatal(err)
	}
	acc := view.AccountNumber

	out := run(t, l,
		"2", acc, "1234", "500",
		"3", acc, "1234", "120.5",
		"3", acc, "1234", "1000",
		"2", acc, "9999", "5",
		"2", acc, "1234", "abc",
		"4", acc, "1234",
		"0",
	)

	for _, want := range []string{
		"Deposited 500.00. Current balance: 500.00",
		"Withdrawn 120.50. Current balance: 379.50",
		"Error: Insufficient balance.",
		"Error: Account not found.",
		"Error: Amount must be a number.",
		"accountNo : " + acc,
		"balance : 379.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("want %q in output", want)
		}
	}

	got, err := l.Authenticate(ctx, acc, "1234")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Balance.Equal(decimal.RequireFromString("379.5")) {
		t.Fatalf("balance=%s want=379.5", got.Balance)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	view, err := l.CreateAccount(ctx, usecase.CreateAccountCommand{Name: "Alice", Age: 25, Email: "a@x.com", PIN: "1234"})
	if err != nil {
		t.Fatal(err)
	}
	acc := view.AccountNumber

	out := run(t, l,
		"5", acc, "1234", "", "", "",
		"5", acc, "1234", "Alicia", "", "4321",
		"6", acc, "4321", "n",
		"6", acc, "4321", "y",
		"0",
	)

	for _, want := range []string{
		"Error: Nothing to update.",
		"Details updated successfully.",
		"Deletion cancelled.",
		"Account deleted successfully.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("want %q in output", want)
		}
	}
	if l.Len() != 0 {
		t.Fatalf("len=%d want=0", l.Len())
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	out := run(t, newLedger(t), "7")
	if !strings.Contains(out, `Unknown option "7".`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
