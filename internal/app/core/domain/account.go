package domain

import "github.com/shopspring/decimal"

const (
	// MinAge 開戶最低年齡
	MinAge = 18
	// PINLength PIN 位數
	PINLength = 4
	// AmountScale 金額精度：小數點後 2 位
	AmountScale = 2
)

// DepositLimit 單筆存款上限
var DepositLimit = decimal.NewFromInt(10000)

// Account 帳戶紀錄
//
// Age 與 AccountNumber 建立後不可變更；Balance 只能透過 Deposit/Withdraw 修改。
// Credential 存放的是 PIN 的雜湊值，不是 PIN 本身。
type Account struct {
	Name          string
	Age           int
	Email         string
	Credential    string
	AccountNumber string
	Balance       decimal.Decimal
}

// AccountView 對外輸出的帳戶資料 (不含 Credential)
type AccountView struct {
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Email         string          `json:"email"`
	AccountNumber string          `json:"accountNo"`
	Balance       decimal.Decimal `json:"balance"`
}

func NewAccount(name string, age int, email, credential, accountNumber string) *Account {
	return &Account{
		Name:          name,
		Age:           age,
		Email:         email,
		Credential:    credential,
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
	}
}

// Deposit 存款
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(DepositLimit) {
		return ErrDepositLimitExceeded
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw 提款
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// View 回傳去除 Credential 的副本
func (a *Account) View() AccountView {
	return AccountView{
		Name:          a.Name,
		Age:           a.Age,
		Email:         a.Email,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
	}
}

// Clone 淺拷貝 (所有欄位皆為值型別)
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}

// ValidateAmount 金額必須 > 0，且最多 AmountScale 位小數
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrInvalidAmount
	}
	return nil
}

// IsPIN 檢查是否剛好為 PINLength 位 ASCII 數字
func IsPIN(pin string) bool {
	if len(pin) != PINLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}
