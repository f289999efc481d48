package xtypeid

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xtypeid/pkg/util/xid"
)

// TypeID 带类型前缀、可按时间排序的标识符。
//
// TypeID 是不可变值类型：
//   - 零值表示空前缀、全零后缀的 TypeID（"00000000000000000000000000"），IsZero 返回 true
//   - 可直接比较（==）和用作 map key
//   - 并发安全，无需加锁
//
// 后缀以 128 位值存储，字符串形式在需要时编码。
// 编码是双射，因此 == 与"前缀和后缀字符串逐字节相等"等价。
type TypeID struct {
	prefix string
	id     uuid.UUID
}

// New 使用 xid 包级共享生成器创建带新后缀的 TypeID。
//
// 共享生成器内部加锁，所有调用被串行化。
// 高并发路径请为每个 goroutine 创建 [xid.Generator] 并使用 [NewWithSource]。
func New(prefix string) (TypeID, error) {
	return NewWithSource(sharedSource{}, prefix)
}

// NewWithSource 使用指定的 Source 生成后缀。
//
// 先校验前缀，前缀无效时不会调用 src。
func NewWithSource(src Source, prefix string) (TypeID, error) {
	if err := validatePrefix(prefix); err != nil {
		return TypeID{}, err
	}
	if src == nil {
		return TypeID{}, ErrNilSource
	}
	id, err := src.New()
	if err != nil {
		return TypeID{}, fmt.Errorf("xtypeid: generate suffix: %w", err)
	}
	return TypeID{prefix: prefix, id: id}, nil
}

// MustNew 与 [New] 相同，失败时 panic。
func MustNew(prefix string) TypeID {
	t, err := New(prefix)
	if err != nil {
		panic(err)
	}
	return t
}

// Zero 返回指定前缀、全零后缀的 TypeID。不会调用生成器。
func Zero(prefix string) (TypeID, error) {
	if err := validatePrefix(prefix); err != nil {
		return TypeID{}, err
	}
	return TypeID{prefix: prefix}, nil
}

// FromUUID 从 UUID 字符串构造 TypeID。
//
// 接受 [uuid.Parse] 支持的所有格式，规范格式为小写 8-4-4-4-12。
func FromUUID(prefix, s string) (TypeID, error) {
	if err := validatePrefix(prefix); err != nil {
		return TypeID{}, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return TypeID{}, fmt.Errorf("%w: %w", ErrInvalidUUID, err)
	}
	return TypeID{prefix: prefix, id: id}, nil
}

// FromUUIDBytes 从 16 字节原始值构造 TypeID。
func FromUUIDBytes(prefix string, b []byte) (TypeID, error) {
	if err := validatePrefix(prefix); err != nil {
		return TypeID{}, err
	}
	id, err := uuid.FromBytes(b)
	if err != nil {
		return TypeID{}, fmt.Errorf("%w: %w", ErrInvalidUUID, err)
	}
	return TypeID{prefix: prefix, id: id}, nil
}

// Prefix 返回类型前缀，可能为空。
func (t TypeID) Prefix() string {
	return t.prefix
}

// UUID 返回后缀对应的小写 8-4-4-4-12 UUID 字符串。
func (t TypeID) UUID() string {
	return t.id.String()
}

// UUIDBytes 返回后缀对应的 16 字节值。返回副本。
func (t TypeID) UUIDBytes() [16]byte {
	return t.id
}

// Time 返回后缀中的毫秒时间戳（UTC）。
// 后缀不是 xid 布局（版本 7、变体 10）时返回零值 time.Time。
func (t TypeID) Time() time.Time {
	c, err := xid.Decompose(t.id)
	if err != nil {
		return time.Time{}
	}
	return c.Time
}

// IsZero 报告后缀是否为全零值。前缀不参与判断。
func (t TypeID) IsZero() bool {
	return t.id == uuid.Nil
}

// Equal 报告两个 TypeID 的前缀与后缀是否都相等。
func (t TypeID) Equal(o TypeID) bool {
	return t == o
}

// Compare 先按前缀、再按后缀比较。
// 返回值：-1 (t < o), 0 (t == o), 1 (t > o)。
//
// 结果与两者 String() 的字典序一致：字母表按 ASCII 升序排列且后缀定长，
// 后缀首字符总是数字，小于分隔符后可能出现的任何前缀字母。
func (t TypeID) Compare(o TypeID) int {
	if c := strings.Compare(t.prefix, o.prefix); c != 0 {
		return c
	}
	return bytes.Compare(t.id[:], o.id[:])
}
