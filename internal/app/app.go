package app

import (
	"context"
	"fmt"
	"log"

	file_adapter "github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/out/file"
	memory_adapter "github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/out/memory"
	mysql_adapter "github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/out/mysql"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-file-ledger/internal/config"
	"github.com/JoeShih716/go-file-ledger/pkg/credential"
	"github.com/JoeShih716/go-file-ledger/pkg/mysql"
)

// NewLedger 依設定建立儲存後端與 Ledger
//
// 回傳:
//
//	*usecase.Ledger: 已載入資料的 Ledger
//	func() error: 釋放儲存後端資源 (例如 MySQL 連線)
//	error: 初始化錯誤
func NewLedger(ctx context.Context, cfg config.Config, opts ...usecase.Option) (*usecase.Ledger, func() error, error) {
	hasher, err := credential.New(cfg.Credential.Scheme, cfg.Credential.BcryptCost)
	if err != nil {
		return nil, nil, err
	}
	store, closeStore, err := newStore(ctx, cfg, hasher)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := usecase.NewLedger(ctx, store, hasher, opts...)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return ledger, closeStore, nil
}

func newStore(ctx context.Context, cfg config.Config, hasher usecase.CredentialHasher) (usecase.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Println("Using in-memory storage, data is lost on exit")
		return memory_adapter.NewStore(), noop, nil
	case config.DriverMySQL:
		client, err := mysql.NewClient(cfg.MySQL)
		if err != nil {
			return nil, nil, err
		}
		store := mysql_adapter.NewMySQLStore(client)
		if err := store.Migrate(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("migrate accounts table: %w", err)
		}
		log.Println("Connected to MySQL successfully")
		return store, client.Close, nil
	case config.DriverFile:
		log.Printf("Using file storage %s", cfg.Storage.Path)
		return file_adapter.NewStore(cfg.Storage.Path, file_adapter.WithHasher(hasher)), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
