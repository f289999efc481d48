package xtypeid

import (
	"fmt"

	"github.com/google/uuid"
)

// PrefixType 在编译期绑定前缀。通常用空结构体实现：
//
//	type userPrefix struct{}
//
//	func (userPrefix) Prefix() string { return "user" }
//
//	type UserID = xtypeid.Typed[userPrefix]
type PrefixType interface {
	Prefix() string
}

// Typed 前缀固定为 P.Prefix() 的 TypeID。
//
// 不同 P 的 Typed 是不同的 Go 类型，user ID 无法被误传到需要 post ID 的位置。
// 零值是前缀为 P.Prefix()、后缀全零的 TypeID。
type Typed[P PrefixType] struct {
	id uuid.UUID
}

func prefixOf[P PrefixType]() string {
	var p P
	return p.Prefix()
}

// NewTyped 使用 xid 包级共享生成器创建 Typed。
func NewTyped[P PrefixType]() (Typed[P], error) {
	return NewTypedWithSource[P](sharedSource{})
}

// NewTypedWithSource 使用指定的 Source 创建 Typed。
func NewTypedWithSource[P PrefixType](src Source) (Typed[P], error) {
	t, err := NewWithSource(src, prefixOf[P]())
	if err != nil {
		return Typed[P]{}, err
	}
	return Typed[P]{id: t.id}, nil
}

// ParseTyped 解析字符串，并要求前缀与 P.Prefix() 一致。
func ParseTyped[P PrefixType](s string) (Typed[P], error) {
	t, err := Parse(s)
	if err != nil {
		return Typed[P]{}, err
	}
	return TypedFrom[P](t)
}

// TypedFrom 把 TypeID 转为 Typed，前缀不一致时返回 [ErrPrefixMismatch]。
func TypedFrom[P PrefixType](t TypeID) (Typed[P], error) {
	want := prefixOf[P]()
	if t.prefix != want {
		return Typed[P]{}, fmt.Errorf("%w: want %q, got %q", ErrPrefixMismatch, want, t.prefix)
	}
	return Typed[P]{id: t.id}, nil
}

// TypeID 返回无类型的 TypeID。
func (t Typed[P]) TypeID() TypeID {
	return TypeID{prefix: prefixOf[P](), id: t.id}
}

// Prefix 返回 P.Prefix()。
func (t Typed[P]) Prefix() string {
	return prefixOf[P]()
}

// Suffix 返回 26 字符的 base32 后缀。
func (t Typed[P]) Suffix() string {
	return t.TypeID().Suffix()
}

// String 返回规范字符串。
func (t Typed[P]) String() string {
	return t.TypeID().String()
}

// UUID 返回后缀对应的 UUID 字符串。
func (t Typed[P]) UUID() string {
	return t.id.String()
}

// IsZero 报告后缀是否为全零值。
func (t Typed[P]) IsZero() bool {
	return t.id == uuid.Nil
}

// MarshalText 实现 [encoding.TextMarshaler]。
func (t Typed[P]) MarshalText() ([]byte, error) {
	return t.TypeID().MarshalText()
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，前缀必须一致。
func (t *Typed[P]) UnmarshalText(text []byte) error {
	if t == nil {
		return ErrNilReceiver
	}
	var raw TypeID
	if err := raw.UnmarshalText(text); err != nil {
		return err
	}
	return t.assign(raw)
}

// MarshalJSON 实现 [json.Marshaler]。
func (t Typed[P]) MarshalJSON() ([]byte, error) {
	return t.TypeID().MarshalJSON()
}

// UnmarshalJSON 实现 [json.Unmarshaler]，null 设置为零值，前缀必须一致。
func (t *Typed[P]) UnmarshalJSON(data []byte) error {
	if t == nil {
		return ErrNilReceiver
	}
	if string(data) == "null" {
		*t = Typed[P]{}
		return nil
	}
	var raw TypeID
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	return t.assign(raw)
}

func (t *Typed[P]) assign(raw TypeID) error {
	typed, err := TypedFrom[P](raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	*t = typed
	return nil
}
