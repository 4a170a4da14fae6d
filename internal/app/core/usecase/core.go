package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
)

// maxAccountNumberAttempts 產生帳號時遇到重複的重試上限
const maxAccountNumberAttempts = 32

// Ledger 是核心業務邏輯層
//
// 結構:
//
//	accounts: 記憶體中的帳戶集合 (有序)
//	store: 持久化後端，每次變更後整份寫回 (write-through)
//	hasher: PIN 雜湊
//	mu: 序列化所有操作
type Ledger struct {
	mu       sync.Mutex
	accounts []*domain.Account
	store    Store
	hasher   CredentialHasher
	logger   *log.Logger
	rng      *rand.Rand
}

// Option 設定 Ledger 的選項
type Option func(*Ledger)

// WithLogger 指定 logger，預設為 log.Default()
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithRand 指定產生帳號用的亂數來源
func WithRand(rng *rand.Rand) Option {
	return func(l *Ledger) {
		l.rng = rng
	}
}

// NewLedger 建立 Ledger 並從 store 載入既有帳戶
//
// 參數:
//
//	ctx: 上下文
//	store: 持久化後端
//	hasher: PIN 雜湊
//
// 回傳:
//
//	*Ledger: Ledger 實例
//	error: 載入錯誤 (檔案不存在或損毀不算錯誤)
func NewLedger(ctx context.Context, store Store, hasher CredentialHasher, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		hasher: hasher,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Load 重新從 store 載入帳戶集合
// 資料損毀時以空集合啟動，不回傳錯誤
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts, err := l.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageCorrupt) {
			return fmt.Errorf("load accounts: %w", err)
		}
		l.logger.Printf("ledger: %v, starting with an empty collection", err)
		accounts = nil
	}
	l.accounts = accounts
	l.logger.Printf("ledger: loaded %d accounts", len(l.accounts))
	return nil
}

// Save 將目前的帳戶集合整份寫回 store
func (l *Ledger) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, l.accounts)
}

// Len 回傳帳戶數量
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts)
}

// CreateAccount 開戶，初始餘額為 0
func (l *Ledger) CreateAccount(ctx context.Context, cmd CreateAccountCommand) (domain.AccountView, error) {
	if err := validateCommand(cmd); err != nil {
		return domain.AccountView{}, err
	}
	credential, err := l.hasher.Hash(cmd.PIN)
	if err != nil {
		return domain.AccountView{}, fmt.Errorf("hash pin: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	accountNumber, err := l.newAccountNumber()
	if err != nil {
		return domain.AccountView{}, err
	}
	account := domain.NewAccount(cmd.Name, cmd.Age, cmd.Email, credential, accountNumber)

	next := append(slices.Clone(l.accounts), account)
	if err := l.commit(ctx, next); err != nil {
		return domain.AccountView{}, err
	}
	l.logger.Printf("ledger: created account %s", accountNumber)
	return account.View(), nil
}

// Authenticate 以帳號與 PIN 驗證身分，回傳去除 Credential 的帳戶資料
func (l *Ledger) Authenticate(ctx context.Context, accountNumber, pin string) (domain.AccountView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, account, err := l.authenticate(accountNumber, pin)
	if err != nil {
		return domain.AccountView{}, err
	}
	return account.View(), nil
}

// Deposit 存款，回傳新餘額
func (l *Ledger) Deposit(ctx context.Context, cmd DepositCommand) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, account, err := l.authenticate(cmd.AccountNumber, cmd.PIN)
	if err != nil {
		return decimal.Zero, err
	}
	updated := account.Clone()
	if err := updated.Deposit(cmd.Amount); err != nil {
		return decimal.Zero, err
	}
	if err := l.commit(ctx, l.replace(i, updated)); err != nil {
		return decimal.Zero, err
	}
	l.logger.Printf("ledger: deposit %s to %s", cmd.Amount, account.AccountNumber)
	return updated.Balance, nil
}

// Withdraw 提款，回傳新餘額
func (l *Ledger) Withdraw(ctx context.Context, cmd WithdrawCommand) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, account, err := l.authenticate(cmd.AccountNumber, cmd.PIN)
	if err != nil {
		return decimal.Zero, err
	}
	updated := account.Clone()
	if err := updated.Withdraw(cmd.Amount); err != nil {
		return decimal.Zero, err
	}
	if err := l.commit(ctx, l.replace(i, updated)); err != nil {
		return decimal.Zero, err
	}
	l.logger.Printf("ledger: withdraw %s from %s", cmd.Amount, account.AccountNumber)
	return updated.Balance, nil
}

// UpdateDetails 更新姓名、Email、PIN
//
// 只覆寫有提供 (非空白) 的欄位；新 PIN 不合法時整筆失敗，不會寫入任何欄位。
func (l *Ledger) UpdateDetails(ctx context.Context, cmd UpdateDetailsCommand) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, account, err := l.authenticate(cmd.AccountNumber, cmd.PIN)
	if err != nil {
		return err
	}
	// 只有空白的欄位視為沒有提供
	if blank(cmd.NewPIN) {
		cmd.NewPIN = ""
	}
	if err := validateCommand(cmd); err != nil {
		return err
	}
	if cmd.empty() {
		return domain.ErrNoChangeRequested
	}

	updated := account.Clone()
	if !blank(cmd.Name) {
		updated.Name = cmd.Name
	}
	if !blank(cmd.Email) {
		updated.Email = cmd.Email
	}
	if !blank(cmd.NewPIN) {
		credential, err := l.hasher.Hash(cmd.NewPIN)
		if err != nil {
			return fmt.Errorf("hash pin: %w", err)
		}
		updated.Credential = credential
	}
	if err := l.commit(ctx, l.replace(i, updated)); err != nil {
		return err
	}
	l.logger.Printf("ledger: updated account %s", account.AccountNumber)
	return nil
}

// DeleteAccount 刪除帳戶，無法復原
func (l *Ledger) DeleteAccount(ctx context.Context, accountNumber, pin string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, _, err := l.authenticate(accountNumber, pin)
	if err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(l.accounts), i, i+1)
	if err := l.commit(ctx, next); err != nil {
		return err
	}
	l.logger.Printf("ledger: deleted account %s", accountNumber)
	return nil
}

// authenticate 找出帳號相符且 PIN 正確的帳戶 (呼叫端需持有 mu)
func (l *Ledger) authenticate(accountNumber, pin string) (int, *domain.Account, error) {
	for i, account := range l.accounts {
		if account.AccountNumber != accountNumber {
			continue
		}
		if l.hasher.Verify(pin, account.Credential) {
			return i, account, nil
		}
		break
	}
	return -1, nil, domain.ErrAuthenticationFailed
}

// commit 先寫入 store，成功後才替換記憶體中的集合
func (l *Ledger) commit(ctx context.Context, next []*domain.Account) error {
	if err := l.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	l.accounts = next
	return nil
}

// replace 回傳第 i 筆被替換後的新集合，不修改原集合
func (l *Ledger) replace(i int, account *domain.Account) []*domain.Account {
	next := slices.Clone(l.accounts)
	next[i] = account
	return next
}

func (l *Ledger) newAccountNumber() (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		candidate := domain.GenerateAccountNumber(l.rng)
		if !l.exists(candidate) {
			return candidate, nil
		}
	}
	return "", domain.ErrAccountNumberExhausted
}

func (l *Ledger) exists(accountNumber string) bool {
	for _, account := range l.accounts {
		if account.AccountNumber == accountNumber {
			return true
		}
	}
	return false
}

var _ AccountService = (*Ledger)(nil)
