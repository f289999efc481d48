package xtypeid

import "errors"

// 预定义错误变量，支持 errors.Is 判断。
//
// 校验在第一个违反的规则处立即返回，每条规则对应一个独立的错误。
var (
	// ErrInvalidPrefixLength 前缀超过 63 个字符。
	ErrInvalidPrefixLength = errors.New("xtypeid: prefix longer than 63 characters")

	// ErrInvalidPrefixStart 前缀以 '_' 开头。
	ErrInvalidPrefixStart = errors.New("xtypeid: prefix starts with '_'")

	// ErrInvalidPrefixEnd 前缀以 '_' 结尾。
	ErrInvalidPrefixEnd = errors.New("xtypeid: prefix ends with '_'")

	// ErrInvalidPrefixChars 前缀包含 [a-z_] 以外的字符。
	ErrInvalidPrefixChars = errors.New("xtypeid: prefix contains characters outside [a-z_]")

	// ErrEmptyPrefix 字符串包含分隔符但分隔符前为空（如 "_0000…"）。
	ErrEmptyPrefix = errors.New("xtypeid: empty prefix before separator")

	// ErrEmptySuffix 后缀为空。
	ErrEmptySuffix = errors.New("xtypeid: empty suffix")

	// ErrInvalidSuffixLength 后缀长度不是 26。
	ErrInvalidSuffixLength = errors.New("xtypeid: suffix must be 26 characters")

	// ErrInvalidSuffixOverflow 后缀首字符大于 '7'，解码值会超过 128 位。
	ErrInvalidSuffixOverflow = errors.New("xtypeid: suffix exceeds 128 bits (first character must be 0-7)")

	// ErrInvalidSuffixChars 后缀包含 base32 字母表以外的字符。
	ErrInvalidSuffixChars = errors.New("xtypeid: suffix contains characters outside the base32 alphabet")

	// ErrBufferTooSmall 目标缓冲区放不下规范字符串。
	ErrBufferTooSmall = errors.New("xtypeid: buffer too small")

	// ErrInvalidUUID UUID 字符串或字节无法解析。
	ErrInvalidUUID = errors.New("xtypeid: invalid uuid")

	// ErrInvalidValue 序列化适配器（Text/JSON/SQL/BSON）收到无效输入。
	// 适配器同时包装具体的语法错误，两者都可用 errors.Is 判断。
	ErrInvalidValue = errors.New("xtypeid: invalid value")

	// ErrPrefixMismatch TypeID 的前缀与 Typed 要求的前缀不一致。
	ErrPrefixMismatch = errors.New("xtypeid: prefix mismatch")

	// ErrNilSource 生成 TypeID 时传入了 nil Source。
	ErrNilSource = errors.New("xtypeid: nil source")

	// ErrNilReceiver 在 nil 指针上调用 Unmarshal/Scan。
	ErrNilReceiver = errors.New("xtypeid: nil receiver")
)
