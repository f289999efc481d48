package xtypeid

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// 适配器错误同时包装 ErrInvalidValue 与具体的语法错误，
// 调用方可按需选择粗粒度或细粒度判断。
func invalidValue(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidValue, err)
}

// MarshalText 实现 [encoding.TextMarshaler]，输出规范字符串。
func (t TypeID) MarshalText() ([]byte, error) {
	return t.AppendTo(make([]byte, 0, t.Len())), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，语义同 [Parse]。
// 对 nil 接收者返回 [ErrNilReceiver]。
func (t *TypeID) UnmarshalText(text []byte) error {
	if t == nil {
		return ErrNilReceiver
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return invalidValue(err)
	}
	*t = parsed
	return nil
}

// MarshalJSON 实现 [json.Marshaler]，输出带引号的规范字符串。
//
// 规范字符串只包含 [a-z0-9_]，无需 JSON 转义，直接构造字节切片。
func (t TypeID) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, t.Len()+2)
	buf = append(buf, '"')
	buf = t.AppendTo(buf)
	buf = append(buf, '"')
	return buf, nil
}

// UnmarshalJSON 实现 [json.Unmarshaler]。
// null 设置为零值；其余输入必须是合法的 TypeID 字符串。
// 对 nil 接收者返回 [ErrNilReceiver]。
func (t *TypeID) UnmarshalJSON(data []byte) error {
	if t == nil {
		return ErrNilReceiver
	}
	if string(data) == "null" {
		*t = TypeID{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return invalidValue(err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return invalidValue(err)
	}
	*t = parsed
	return nil
}

// Value 实现 [database/sql/driver.Valuer]，写入规范字符串。
func (t TypeID) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan 实现 [database/sql.Scanner]。
// 支持 string、[]byte（字符串或 16 字节二进制 UUID）、nil 输入。
// 对 nil 接收者返回 [ErrNilReceiver]。
func (t *TypeID) Scan(src any) error {
	if t == nil {
		return ErrNilReceiver
	}
	switch v := src.(type) {
	case nil:
		*t = TypeID{}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		// 16 字节视为 BINARY(16)/UUID 列的原始值，前缀为空。
		// 文本格式 TypeID 至少 26 字符，不会与之冲突。
		if len(v) == 16 {
			parsed, err := FromUUIDBytes("", v)
			if err != nil {
				return invalidValue(err)
			}
			*t = parsed
			return nil
		}
		return t.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, src)
	}
}

func (t *TypeID) scanString(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return invalidValue(err)
	}
	*t = parsed
	return nil
}
