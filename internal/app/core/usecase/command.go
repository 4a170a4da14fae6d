package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
)

// CreateAccountCommand 開戶
type CreateAccountCommand struct {
	Name  string
	Age   int `validate:"gte=18"`
	Email string
	PIN   string `validate:"pin"`
}

// DepositCommand 存款
type DepositCommand struct {
	AccountNumber string
	PIN           string
	Amount        decimal.Decimal
}

// WithdrawCommand 提款
type WithdrawCommand struct {
	AccountNumber string
	PIN           string
	Amount        decimal.Decimal
}

// UpdateDetailsCommand 更新資料，空字串代表不修改該欄位
type UpdateDetailsCommand struct {
	AccountNumber string
	PIN           string
	Name          string
	Email         string
	NewPIN        string `validate:"omitempty,pin"`
}

func (c UpdateDetailsCommand) empty() bool {
	return blank(c.Name) && blank(c.Email) && blank(c.NewPIN)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return domain.IsPIN(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateCommand 驗證 struct tag，並把第一個欄位錯誤轉成 domain 錯誤
func validateCommand(cmd any) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	switch fe := fieldErrs[0]; fe.Tag() {
	case "gte":
		return domain.ErrUnderage
	case "pin":
		return domain.ErrInvalidPIN
	default:
		return fmt.Errorf("%w: field %s failed %s", domain.ErrValidation, fe.Field(), fe.Tag())
	}
}
