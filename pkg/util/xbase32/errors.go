package xbase32

import "errors"

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrInvalidLength 表示待解码输入长度不是 26。
	ErrInvalidLength = errors.New("xbase32: invalid length")

	// ErrInvalidCharacter 表示待解码输入包含字母表之外的字符。
	ErrInvalidCharacter = errors.New("xbase32: invalid character")
)
