package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-file-ledger/pkg/credential"
	"github.com/JoeShih716/go-file-ledger/pkg/mysql"
)

// DefaultPath 設定檔預設位置
const DefaultPath = "config/config.yaml"

// 儲存後端
const (
	DriverFile   = "file"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Config struct {
	Storage    Storage      `yaml:"storage"`
	MySQL      mysql.Config `yaml:"mysql"`
	Credential Credential   `yaml:"credential"`
	GRPC       GRPC         `yaml:"grpc"`
	Web        Server       `yaml:"web"`
}

type Storage struct {
	Driver string `yaml:"driver"` // file | mysql | memory
	Path   string `yaml:"path"`   // driver 為 file 時的檔案路徑
}

type Credential struct {
	Scheme     string `yaml:"scheme"` // sha256 | bcrypt
	BcryptCost int    `yaml:"bcrypt_cost"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type GRPC struct {
	Addr   string `yaml:"addr"`   // Server 監聽位址
	Target string `yaml:"target"` // 遠端 console 連線的目標
	Debug  bool   `yaml:"debug"`  // 遠端 console 是否記錄每次呼叫
}

// Load 讀取 YAML 設定檔
// 檔案不存在時回傳預設值；格式錯誤則回傳錯誤
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Parse(nil)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse 解析 YAML 內容並補上預設值
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data.json"
	}
	if c.Credential.Scheme == "" {
		c.Credential.Scheme = credential.SchemeSHA256
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":50051"
	}
	if c.GRPC.Target == "" {
		c.GRPC.Target = "localhost:50051"
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":8080"
	}
	// 補全 MySQL 預設配置 (如果 yaml 沒寫)
	c.MySQL.SetDefaults()
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory:
	case DriverMySQL:
		if err := c.MySQL.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := credential.New(c.Credential.Scheme, c.Credential.BcryptCost); err != nil {
		return err
	}
	return nil
}
