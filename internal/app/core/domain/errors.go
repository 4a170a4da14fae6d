package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 輸入格式錯誤或超出範圍
	ErrValidation = errors.New("validation failed")

	// ErrAuthenticationFailed 帳號與 PIN 不符 (不區分帳號不存在或 PIN 錯誤)
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNoChangeRequested 更新時沒有提供任何欄位
	ErrNoChangeRequested = errors.New("no change requested")

	// ErrStorageCorrupt 儲存檔案無法讀取或格式錯誤
	ErrStorageCorrupt = errors.New("storage corrupt")

	// ErrAccountNumberExhausted 無法產生不重複的帳號
	ErrAccountNumberExhausted = errors.New("could not generate a unique account number")
)

// 以下皆為 ErrValidation 的細分，可用 errors.Is(err, ErrValidation) 判斷
var (
	// ErrUnderage 開戶年齡未滿 18
	ErrUnderage = fmt.Errorf("%w: age must be at least %d", ErrValidation, MinAge)

	// ErrInvalidPIN PIN 必須為 4 位數字
	ErrInvalidPIN = fmt.Errorf("%w: pin must be exactly 4 digits", ErrValidation)

	// ErrInvalidAmount 金額必須大於 0 且最多兩位小數
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive with at most 2 decimal places", ErrValidation)

	// ErrDepositLimitExceeded 單筆存款超過上限
	ErrDepositLimitExceeded = fmt.Errorf("%w: deposit exceeds per-transaction limit", ErrValidation)

	// ErrInsufficientBalance 餘額不足
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrValidation)
)
