package jsonfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// 自己定義常用的權限常量
const (
	// rw-r--r-- (擁有者讀寫，其他人唯讀) - 適用於大多數檔案
	FileModeReadOnly fs.FileMode = 0644

	// rw------- (只有擁有者可讀寫) - 適用於私鑰、機密檔
	FileModePrivate fs.FileMode = 0600
)

// Indent 輸出時的縮排 (方便人工檢視)
const Indent = "    "

// Read 讀取整個 JSON 檔並解析到 v
//
// 回傳:
//
//	bool: 檔案是否存在
//	error: 讀取或解析錯誤；檔案不存在不算錯誤
func Read(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return true, err
	}
	return true, json.Unmarshal(data, v)
}

// Write 將 v 序列化後覆寫整個檔案，並強制刷入硬碟
// O_TRUNC 不是原子操作，寫到一半中斷會留下不完整的檔案
func Write(path string, v any, perm fs.FileMode) error {
	data, err := json.MarshalIndent(v, "", Indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	// 刷入硬碟
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
