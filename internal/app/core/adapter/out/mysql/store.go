package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeShih716/go-file-ledger/internal/app/core/domain"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-file-ledger/pkg/mysql"
)

// saveBatchSize 批次寫入的筆數
const saveBatchSize = 100

// sqlAccount 對應資料庫的 accounts 表
type sqlAccount struct {
	AccountNumber string          `gorm:"column:account_no;type:varchar(7);primaryKey"`
	Position      int             `gorm:"index"` // 維持集合順序
	Name          string          `gorm:"type:varchar(255)"`
	Age           int
	Email         string          `gorm:"type:varchar(255)"`
	Credential    string          `gorm:"column:pin;type:varchar(255)"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2)"`
	UpdatedAt     int64           `gorm:"autoUpdateTime:milli"` // 自動更新時間
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// MySQLStore 以 MySQL 資料表保存帳戶集合
//
// 與檔案版相同，每次 Save 都在一個 Transaction 內整張表替換。
type MySQLStore struct {
	client *mysql.Client
}

func NewMySQLStore(client *mysql.Client) *MySQLStore {
	return &MySQLStore{
		client: client,
	}
}

// Migrate 建立或更新 accounts 表
func (s *MySQLStore) Migrate(ctx context.Context) error {
	return s.client.DB().WithContext(ctx).AutoMigrate(&sqlAccount{})
}

// Load 依 Position 順序讀出所有帳戶
func (s *MySQLStore) Load(ctx context.Context) ([]*domain.Account, error) {
	var rows []sqlAccount
	if err := s.client.DB().WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomain(rows), nil
}

// Save 刪除整張表後重新寫入
func (s *MySQLStore) Save(ctx context.Context, accounts []*domain.Account) error {
	rows := toRows(accounts)
	return s.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&sqlAccount{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, saveBatchSize).Error
	})
}

func toRows(accounts []*domain.Account) []sqlAccount {
	rows := make([]sqlAccount, 0, len(accounts))
	for i, a := range accounts {
		rows = append(rows, sqlAccount{
			AccountNumber: a.AccountNumber,
			Position:      i,
			Name:          a.Name,
			Age:           a.Age,
			Email:         a.Email,
			Credential:    a.Credential,
			Balance:       a.Balance,
		})
	}
	return rows
}

func toDomain(rows []sqlAccount) []*domain.Account {
	accounts := make([]*domain.Account, 0, len(rows))
	for _, r := range rows {
		accounts = append(accounts, &domain.Account{
			Name:          r.Name,
			Age:           r.Age,
			Email:         r.Email,
			Credential:    r.Credential,
			AccountNumber: r.AccountNumber,
			Balance:       r.Balance,
		})
	}
	return accounts
}

var _ usecase.Store = (*MySQLStore)(nil)
