package xtypeid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/omeyang/xtypeid/pkg/util/xbase32"
)

const (
	// MaxPrefixLen 前缀最大长度。
	MaxPrefixLen = 63

	// SuffixLen 后缀固定长度。
	SuffixLen = xbase32.EncodedLen

	separator = '_'
)

// Parse 解析 TypeID 字符串。
//
// 以最后一个 '_' 分割前缀与后缀，因此前缀内部可以包含 '_'（如 "pre_fix_…"）。
// 没有分隔符时整个输入视为后缀、前缀为空；
// 有分隔符但前缀为空时返回 [ErrEmptyPrefix]。
func Parse(s string) (TypeID, error) {
	i := strings.LastIndexByte(s, separator)
	if i < 0 {
		return FromSuffix("", s)
	}
	if i == 0 {
		return TypeID{}, ErrEmptyPrefix
	}
	return FromSuffix(s[:i], s[i+1:])
}

// MustParse 与 [Parse] 相同，失败时 panic。
// 仅用于常量或测试中已知合法的输入。
func MustParse(s string) TypeID {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromSuffix 用已有的前缀与后缀构造 TypeID，不生成新值。
//
// 先校验前缀，再校验后缀。
func FromSuffix(prefix, suffix string) (TypeID, error) {
	if err := validatePrefix(prefix); err != nil {
		return TypeID{}, err
	}
	id, err := decodeSuffix(suffix)
	if err != nil {
		return TypeID{}, err
	}
	return TypeID{prefix: prefix, id: id}, nil
}

// MustFromSuffix 与 [FromSuffix] 相同，失败时 panic。
func MustFromSuffix(prefix, suffix string) TypeID {
	t, err := FromSuffix(prefix, suffix)
	if err != nil {
		panic(err)
	}
	return t
}

// ValidatePrefix 校验前缀语法，返回第一个违反的规则对应的错误。
func ValidatePrefix(prefix string) error {
	return validatePrefix(prefix)
}

func validatePrefix(prefix string) error {
	switch {
	case len(prefix) > MaxPrefixLen:
		return fmt.Errorf("%w: got %d", ErrInvalidPrefixLength, len(prefix))
	case prefix == "":
		return nil
	case prefix[0] == separator:
		return ErrInvalidPrefixStart
	case prefix[len(prefix)-1] == separator:
		return ErrInvalidPrefixEnd
	}
	for i := range len(prefix) {
		c := prefix[i]
		if (c < 'a' || c > 'z') && c != separator {
			return fmt.Errorf("%w: %q at offset %d", ErrInvalidPrefixChars, c, i)
		}
	}
	return nil
}

// decodeSuffix 校验并解码后缀。
//
// 首字符溢出检查先于完整解码：首字符的字母表索引大于 7 会置位第 128 位以上，
// 编解码器本身会丢弃这些位，因此必须在这里拒绝。
func decodeSuffix(suffix string) (uuid.UUID, error) {
	switch {
	case suffix == "":
		return uuid.Nil, ErrEmptySuffix
	case len(suffix) != SuffixLen:
		return uuid.Nil, fmt.Errorf("%w: got %d", ErrInvalidSuffixLength, len(suffix))
	}
	if idx, ok := xbase32.Index(suffix[0]); ok && idx > 7 {
		return uuid.Nil, fmt.Errorf("%w: got %q", ErrInvalidSuffixOverflow, suffix[0])
	}
	b, err := xbase32.Decode(suffix)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidSuffixChars, err)
	}
	return uuid.UUID(b), nil
}
