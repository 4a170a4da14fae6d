package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// SchemeSHA256 決定性雜湊 (相同 PIN 得到相同結果)，預設值
	SchemeSHA256 = "sha256"
	// SchemeBcrypt 每筆自帶 salt 的 bcrypt
	SchemeBcrypt = "bcrypt"
)

// Hasher PIN 單向雜湊
type Hasher interface {
	Hash(pin string) (string, error)
	Verify(pin, credential string) bool
}

// New 依 scheme 建立 Hasher
//
// 參數:
//
//	scheme: "sha256" 或 "bcrypt"，空字串視為 "sha256"
//	bcryptCost: bcrypt 的 cost，0 使用 bcrypt.DefaultCost
func New(scheme string, bcryptCost int) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return SHA256{}, nil
	case SchemeBcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return Bcrypt{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

// SHA256 以 hex 編碼的 SHA-256 摘要儲存 PIN
type SHA256 struct{}

func (SHA256) Hash(pin string) (string, error) {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:]), nil
}

// Verify 依 credential 的格式比對，bcrypt 產生的值也能驗證
func (SHA256) Verify(pin, credential string) bool {
	return Verify(pin, credential)
}

// Bcrypt 以 bcrypt 儲存 PIN
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), b.Cost)
	return string(bytes), err
}

// Verify 依 credential 的格式比對，SHA-256 產生的值也能驗證
func (Bcrypt) Verify(pin, credential string) bool {
	return Verify(pin, credential)
}

// Verify 以 credential 本身的格式判斷雜湊方式後比對
// 切換 scheme 後既有帳戶仍可登入；新設定的 PIN 才使用新的 scheme
func Verify(pin, credential string) bool {
	if IsBcrypt(credential) {
		return bcrypt.CompareHashAndPassword([]byte(credential), []byte(pin)) == nil
	}
	sum := sha256.Sum256([]byte(pin))
	hashed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(hashed), []byte(credential)) == 1
}

// IsBcrypt 檢查是否為 bcrypt 的輸出 ($2a$, $2b$, $2y$)
func IsBcrypt(credential string) bool {
	return strings.HasPrefix(credential, "$2")
}
