package domain

import (
	"math/rand/v2"
	"strings"
)

const (
	AccountNumberLength = 7

	accountLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	accountDigits  = "0123456789"
	// AccountSymbols 帳號中可用的符號
	AccountSymbols = "!@#$%^&*"
)

// GenerateAccountNumber 產生 7 碼帳號：3 個大寫字母 + 3 個數字 + 1 個符號，再隨機打亂順序
//
// 參數:
//
//	rng: 亂數來源，nil 時使用全域亂數
//
// 注意: 不檢查是否與既有帳號重複，由呼叫端負責
func GenerateAccountNumber(rng *rand.Rand) string {
	intN := rand.IntN
	shuffle := rand.Shuffle
	if rng != nil {
		intN = rng.IntN
		shuffle = rng.Shuffle
	}

	id := make([]byte, 0, AccountNumberLength)
	for i := 0; i < 3; i++ {
		id = append(id, accountLetters[intN(len(accountLetters))])
	}
	for i := 0; i < 3; i++ {
		id = append(id, accountDigits[intN(len(accountDigits))])
	}
	id = append(id, AccountSymbols[intN(len(AccountSymbols))])

	shuffle(len(id), func(i, j int) { id[i], id[j] = id[j], id[i] })
	return string(id)
}

// IsAccountNumber 檢查字串是否符合帳號格式 (順序不限)
func IsAccountNumber(s string) bool {
	if len(s) != AccountNumberLength {
		return false
	}
	var letters, digits, symbols int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			letters++
		case c >= '0' && c <= '9':
			digits++
		case strings.IndexByte(AccountSymbols, c) >= 0:
			symbols++
		default:
			return false
		}
	}
	return letters == 3 && digits == 3 && symbols == 1
}
