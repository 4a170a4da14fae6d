package usecase

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
)

// Result 給前端顯示的結果 (成功與否 + 訊息)
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Success(message string) Result {
	return Result{Success: true, Message: message}
}

// Failure 將錯誤轉成使用者看得懂的訊息
func Failure(err error) Result {
	return Result{Success: false, Message: ErrorMessage(err)}
}

// ErrorMessage 依錯誤種類回傳訊息
// 驗證失敗一律回 "Account not found."，不透露是帳號還是 PIN 錯誤
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return "Account not found."
	case errors.Is(err, domain.ErrUnderage):
		return fmt.Sprintf("Account creation failed (age must be at least %d).", domain.MinAge)
	case errors.Is(err, domain.ErrInvalidPIN):
		return "PIN must be 4 digits."
	case errors.Is(err, domain.ErrDepositLimitExceeded):
		return fmt.Sprintf("Deposit must be between 0.01 and %s.", domain.DepositLimit)
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "Insufficient balance."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Amount must be greater than 0 with at most 2 decimal places."
	case errors.Is(err, domain.ErrNoChangeRequested):
		return "Nothing to update."
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, domain.ErrAccountNumberExhausted):
		return "Could not allocate an account number, please retry."
	default:
		return "Internal error: " + err.Error()
	}
}

// FormatAmount 金額固定顯示兩位小數
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(domain.AmountScale)
}

func Created(view domain.AccountView) Result {
	return Success(fmt.Sprintf("Account created successfully. Your account number is %s, please note it down.", view.AccountNumber))
}

func Deposited(amount, balance decimal.Decimal) Result {
	return Success(fmt.Sprintf("Deposited %s. Current balance: %s", FormatAmount(amount), FormatAmount(balance)))
}

func Withdrawn(amount, balance decimal.Decimal) Result {
	return Success(fmt.Sprintf("Withdrawn %s. Current balance: %s", FormatAmount(amount), FormatAmount(balance)))
}

func Updated() Result {
	return Success("Details updated successfully.")
}

func Deleted() Result {
	return Success("Account deleted successfully.")
}
