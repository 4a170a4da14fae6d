package memory

import (
	"context"
	"sync"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
)

// Store 是只存在記憶體中的 Store，程式結束即消失
//
// 讀寫都會複製每一筆帳戶，避免呼叫端與 Store 共用指標。
type Store struct {
	accounts []*domain.Account
	mu       sync.RWMutex
	saves    int
}

// NewStore 建立 Store，可帶入初始帳戶
func NewStore(accounts ...*domain.Account) *Store {
	return &Store{accounts: cloneAll(accounts)}
}

// Load 回傳所有帳戶的副本
func (s *Store) Load(ctx context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.accounts), nil
}

// Save 以副本覆寫所有帳戶
func (s *Store) Save(ctx context.Context, accounts []*domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = cloneAll(accounts)
	s.saves++
	return nil
}

// Saves 回傳 Save 被呼叫的次數
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func cloneAll(accounts []*domain.Account) []*domain.Account {
	if len(accounts) == 0 {
		return nil
	}
	out := make([]*domain.Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}

var _ usecase.Store = (*Store)(nil)
