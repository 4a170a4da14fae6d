package domain

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateAccountNumberShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		id := GenerateAccountNumber(rng)
		if !IsAccountNumber(id) {
			t.Fatalf("generated %q does not match the 3 letters / 3 digits / 1 symbol pattern", id)
		}
	}
	// 全域亂數來源
	if id := GenerateAccountNumber(nil); !IsAccountNumber(id) {
		t.Fatalf("generated %q does not match pattern", id)
	}
}

func TestGenerateAccountNumberShuffles(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	// 如果沒有打亂，符號永遠在最後一碼
	for i := 0; i < 200; i++ {
		id := GenerateAccountNumber(rng)
		if !strings.ContainsAny(id[len(id)-1:], AccountSymbols) {
			return
		}
	}
	t.Fatal("symbol always in last position, characters are not shuffled")
}

func TestIsAccountNumber(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"AB1C2#3", true},
		{"#123ABC", true},
		{"ab1c2#3", false}, // 小寫
		{"AB1C2#", false},  // 長度
		{"AB1C2#3X", false},
		{"ABCD12#", false}, // 4 個字母
		{"AB1C2?3", false}, // 非法符號
		{"AB1C2##", false},
	}
	for _, tc := range cases {
		if got := IsAccountNumber(tc.in); got != tc.want {
			t.Errorf("IsAccountNumber(%q)=%v want=%v", tc.in, got, tc.want)
		}
	}
}

func TestIsPIN(t *testing.T) {
	for _, pin := range []string{"0000", "1234", "9999"} {
		if !IsPIN(pin) {
			t.Errorf("IsPIN(%q)=false want true", pin)
		}
	}
	for _, pin := range []string{"", "123", "12345", "12a4", "-123", "+123", "１２３４", " 123"} {
		if IsPIN(pin) {
			t.Errorf("IsPIN(%q)=true want false", pin)
		}
	}
}

func TestDeposit(t *testing.T) {
	cases := []struct {
		amount  string
		wantErr error
		want    string
	}{
		{"500", nil, "500"},
		{"0.01", nil, "0.01"},
		{"10000", nil, "10000"},
		{"10000.01", ErrDepositLimitExceeded, "0"},
		{"0", ErrInvalidAmount, "0"},
		{"-5", ErrInvalidAmount, "0"},
		{"1.005", ErrInvalidAmount, "0"},
	}
	for _, tc := range cases {
		a := NewAccount("A", 20, "a@x.com", "h", "AB1C2#3")
		err := a.Deposit(decimal.RequireFromString(tc.amount))
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("Deposit(%s) err=%v want=%v", tc.amount, err, tc.wantErr)
		}
		if tc.wantErr != nil && !errors.Is(err, ErrValidation) {
			t.Fatalf("Deposit(%s) err=%v should wrap ErrValidation", tc.amount, err)
		}
		if !a.Balance.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("Deposit(%s) balance=%s want=%s", tc.amount, a.Balance, tc.want)
		}
	}
}

func TestWithdraw(t *testing.T) {
	a := NewAccount("A", 20, "a@x.com", "h", "AB1C2#3")
	a.Balance = decimal.NewFromInt(300)

	if err := a.Withdraw(decimal.NewFromInt(9999)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}
	if err := a.Withdraw(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if !a.Balance.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("balance changed on failure: %s", a.Balance)
	}
	if err := a.Withdraw(decimal.NewFromInt(300)); err != nil {
		t.Fatal(err)
	}
	if !a.Balance.IsZero() {
		t.Fatalf("balance=%s want=0", a.Balance)
	}
}

func TestViewRedactsCredential(t *testing.T) {
	a := NewAccount("Alice", 25, "a@x.com", "secret-hash", "AB1C2#3")
	v := a.View()
	if v.Name != "Alice" || v.Age != 25 || v.Email != "a@x.com" || v.AccountNumber != "AB1C2#3" || !v.Balance.IsZero() {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewAccount("Alice", 25, "a@x.com", "h", "AB1C2#3")
	cp := a.Clone()
	cp.Name = "Bob"
	cp.Balance = decimal.NewFromInt(10)
	if a.Name != "Alice" || !a.Balance.IsZero() {
		t.Fatalf("clone shares state with original: %+v", a)
	}
}
