package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
)

// Store 是帳戶集合的持久化介面
//
// 每次都讀寫「整個」集合，不做增量更新。
type Store interface {
	// Load 載入所有帳戶 (保持原順序)；無資料時回傳空集合
	// 資料無法解析時回傳包裝 domain.ErrStorageCorrupt 的錯誤
	Load(ctx context.Context) ([]*domain.Account, error)
	// Save 以傳入的集合覆寫整個儲存內容
	Save(ctx context.Context, accounts []*domain.Account) error
}

// CredentialHasher 負責 PIN 的單向雜湊與比對
type CredentialHasher interface {
	Hash(pin string) (string, error)
	Verify(pin, credential string) bool
}

// AccountService 是前端 (console / web / gRPC) 呼叫的操作集合
type AccountService interface {
	CreateAccount(ctx context.Context, cmd CreateAccountCommand) (domain.AccountView, error)
	Authenticate(ctx context.Context, accountNumber, pin string) (domain.AccountView, error)
	Deposit(ctx context.Context, cmd DepositCommand) (decimal.Decimal, error)
	Withdraw(ctx context.Context, cmd WithdrawCommand) (decimal.Decimal, error)
	UpdateDetails(ctx context.Context, cmd UpdateDetailsCommand) error
	DeleteAccount(ctx context.Context, accountNumber, pin string) error
}
