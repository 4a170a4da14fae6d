package mysql

import (
	"testing"
	"time"

	"gorm.io/gorm/logger"
)

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 3307, User: "ledger", Password: "pw", DBName: "bank"}
	want := "ledger:pw@tcp(db:3307)/bank?charset=utf8mb4&parseTime=True&loc=Local"
	if got := cfg.DSN(); got != want {
		t.Fatalf("DSN()=%q want=%q", got, want)
	}
}

func TestSetDefaults(t *testing.T) {
	cfg := Config{MaxOpenConns: 5}
	cfg.SetDefaults()
	if cfg.Port != 3306 || cfg.MaxOpenConns != 5 || cfg.MaxIdleConns != 10 ||
		cfg.ConnMaxLifetime != 30*time.Minute || cfg.ConnectRetries != 10 || cfg.RetryInterval != 2*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := (&Config{Host: "db"}).Validate(); err == nil {
		t.Fatal("want error without dbname")
	}
	if err := (&Config{DBName: "bank"}).Validate(); err == nil {
		t.Fatal("want error without host")
	}
	if err := (&Config{Host: "db", DBName: "bank"}).Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("want validation error before dialing")
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"info":   logger.Info,
		"warn":   logger.Warn,
		"error":  logger.Error,
		"silent": logger.Silent,
		"":       logger.Error,
	}
	for in, want := range cases {
		if got := logLevel(in); got != want {
			t.Errorf("logLevel(%q)=%v want=%v", in, got, want)
		}
	}
}
