package file

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-file-ledger/pkg/credential"
	"github.com/JoeShih716/go-file-ledger/pkg/jsonfile"
)

// record 對應檔案中的一筆帳戶 (欄位以名稱標記，缺少的欄位以零值載入)
type record struct {
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Email         string          `json:"email"`
	Credential    pinField        `json:"pin"`
	AccountNumber string          `json:"accountNo"`
	Balance       decimal.Decimal `json:"balance"`

	// 更早的版本使用 "accountNo." 當 key，只讀不寫
	LegacyAccountNumber string `json:"accountNo.,omitempty"`
}

// pinField 是 "pin" 欄位
//
// 目前寫入的是 PIN 的雜湊字串；舊版檔案存的是明碼數字 (例如 1234)，
// 或 4 位數字的字串，這兩種在載入時標記為 plain，由 Store 雜湊後再交給 Ledger。
type pinField struct {
	value string
	plain bool
}

func (p *pinField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.value = s
		p.plain = domain.IsPIN(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("pin: %w", err)
	}
	i, err := n.Int64()
	if err != nil || i < 0 {
		return fmt.Errorf("pin %s is not a non-negative integer", n)
	}
	// 舊版以整數儲存，開頭的 0 會被吃掉 (0123 -> 123)
	p.value = fmt.Sprintf("%0*d", domain.PINLength, i)
	p.plain = true
	return nil
}

func (p pinField) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// Store 以單一 JSON 檔儲存所有帳戶
//
// 每次 Load/Save 都重新開檔，不會一直持有 file handle。
type Store struct {
	path   string
	hasher usecase.CredentialHasher
}

// Option 設定 Store 的選項
type Option func(*Store)

// WithHasher 指定載入舊版明碼 PIN 時使用的雜湊，預設為 SHA-256
func WithHasher(hasher usecase.CredentialHasher) Option {
	return func(s *Store) {
		s.hasher = hasher
	}
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		hasher: credential.SHA256{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path 回傳檔案路徑
func (s *Store) Path() string {
	return s.path
}

// Load 讀取整個檔案
// 檔案不存在回傳空集合；內容無法解析時回傳 domain.ErrStorageCorrupt
// 舊版的明碼 PIN 會在這裡雜湊，下一次 Save 時以雜湊值寫回
func (s *Store) Load(ctx context.Context) ([]*domain.Account, error) {
	var records []record
	exists, err := jsonfile.Read(s.path, &records)
	if !exists {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorageCorrupt, s.path, err)
	}

	accounts := make([]*domain.Account, 0, len(records))
	for _, r := range records {
		account, err := s.toDomain(r)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Save 覆寫整個檔案
func (s *Store) Save(ctx context.Context, accounts []*domain.Account) error {
	records := make([]record, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, fromDomain(a))
	}
	return jsonfile.Write(s.path, records, jsonfile.FileModePrivate)
}

func fromDomain(a *domain.Account) record {
	return record{
		Name:          a.Name,
		Age:           a.Age,
		Email:         a.Email,
		Credential:    pinField{value: a.Credential},
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
	}
}

func (s *Store) toDomain(r record) (*domain.Account, error) {
	accountNumber := r.AccountNumber
	if accountNumber == "" {
		accountNumber = r.LegacyAccountNumber
	}
	cred := r.Credential.value
	if r.Credential.plain {
		hashed, err := s.hasher.Hash(cred)
		if err != nil {
			return nil, fmt.Errorf("hash stored pin of %s: %w", accountNumber, err)
		}
		cred = hashed
	}
	return &domain.Account{
		Name:          r.Name,
		Age:           r.Age,
		Email:         r.Email,
		Credential:    cred,
		AccountNumber: accountNumber,
		Balance:       r.Balance,
	}, nil
}

var _ usecase.Store = (*Store)(nil)
