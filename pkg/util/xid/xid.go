package xid

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// 错误定义
// =============================================================================

var (
	// ErrNotInitialized 生成器未初始化。
	// 当用户显式调用 Init 但失败后，后续包级函数（New/NewWithRetry 等）返回此错误。
	// 此时自动初始化被禁用以尊重用户意图，请修复 Init 失败原因后重新调用 Init。
	ErrNotInitialized = errors.New("xid: generator not initialized (Init was called but failed; call Init again to retry)")

	// ErrAlreadyInitialized 生成器已初始化。
	// 第二次调用 Init 时返回此错误。如需多个生成器，请使用 NewGenerator。
	ErrAlreadyInitialized = errors.New("xid: generator already initialized")

	// ErrOverTimeLimit 时间分量超出 48 位毫秒范围（约公元 10889 年）或早于 Unix 纪元。
	// 这是不可恢复的错误，NewWithRetry 不会重试此错误。
	ErrOverTimeLimit = errors.New("xid: time component overflow")

	// ErrClockDrift 生成时间领先墙钟超过 WithMaxDrift 设置的上限。
	// 仅在显式启用 WithMaxDrift 时出现，NewWithRetry 会等待墙钟追上。
	ErrClockDrift = errors.New("xid: clock drift limit exceeded")

	// ErrDriftWaitTimeout NewWithRetry 等待墙钟追上超时。
	ErrDriftWaitTimeout = errors.New("xid: clock drift wait timeout")

	// ErrRandom 随机源读取失败。
	ErrRandom = errors.New("xid: random source failure")

	// ErrInvalidID ID 不是本包布局（版本 7、变体 10）。
	ErrInvalidID = errors.New("xid: invalid id")

	// ErrNilContext context 参数为 nil。
	// 非 Must* API 不应 panic，调用方应传入有效的 context（至少 context.Background()）。
	ErrNilContext = errors.New("xid: nil context")

	// ErrInvalidConfig 配置参数无效。
	ErrInvalidConfig = errors.New("xid: invalid config")

	// ErrNilGenerator 生成器实例为 nil 或未通过构造函数创建。
	// 请始终通过 NewGenerator 或 NewLockedGenerator 创建生成器实例。
	ErrNilGenerator = errors.New("xid: nil generator (use NewGenerator to create)")
)

// =============================================================================
// 等待配置
// =============================================================================

const (
	// DefaultMaxWaitDuration 默认最大等待时间（仅在启用 WithMaxDrift 时生效）
	DefaultMaxWaitDuration = 500 * time.Millisecond

	// DefaultRetryInterval 默认重试间隔
	DefaultRetryInterval = time.Millisecond
)

// =============================================================================
// ID 位布局常量
// =============================================================================

// 128 位布局（大端）：
//
//	127-80  48 位  Unix 毫秒时间戳
//	79-76    4 位  版本 0111
//	75-64   12 位  毫秒内序列号
//	63-62    2 位  变体 10
//	61-0    62 位  随机数
const (
	timeBits     = 48
	sequenceBits = 12
	randomBits   = 62

	versionBits = 0x7
	variantBits = 0x2

	sequenceMask = (1 << sequenceBits) - 1 // 0xFFF
	maxTimeValue = (1 << timeBits) - 1     // 48 位最大值
	randomMask   = (1 << randomBits) - 1
)

// =============================================================================
// Decompose 结果
// =============================================================================

// Components 表示 ID 分解后的各组成部分。
type Components struct {
	// ID 原始 ID
	ID uuid.UUID
	// Millis 毫秒时间戳（48 位）
	Millis int64
	// Time 毫秒时间戳对应的 UTC 时间
	Time time.Time
	// Sequence 毫秒内序列号（12 位，有效范围 0-4095）
	Sequence uint16
	// Random 随机部分（62 位）
	Random uint64
}

// Decompose 分解 ID 为各个组成部分。
//
// 这是纯函数，不需要生成器即可使用。
// 版本不是 7 或变体不是 RFC 4122/9562 时返回 [ErrInvalidID]。
func Decompose(id uuid.UUID) (Components, error) {
	if id.Version() != 7 || id.Variant() != uuid.RFC4122 {
		return Components{}, fmt.Errorf("%w: version %d, variant %s", ErrInvalidID, id.Version(), id.Variant())
	}
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	ms := int64(hi >> 16)
	return Components{
		ID:       id,
		Millis:   ms,
		Time:     time.UnixMilli(ms).UTC(),
		Sequence: uint16(hi & sequenceMask),
		Random:   lo & randomMask,
	}, nil
}

// =============================================================================
// 全局共享生成器
// =============================================================================

// 包级函数共享一个 LockedGenerator：所有 goroutine 的生成操作被同一把锁串行化。
// 热点路径应为每个 goroutine 创建独立 Generator。
var (
	defaultGen atomic.Pointer[LockedGenerator]
	initMu     sync.Mutex
	// initCalled 标记用户是否显式调用过 Init。一旦为 true，
	// ensureInitialized 不再自动初始化，避免覆盖用户意图。受 initMu 保护。
	initCalled bool
)

// Init 初始化全局共享生成器。
//
// 如果不调用 Init，首次生成 ID 时会使用默认配置自动初始化。
// Init 只能成功一次，成功后重复调用返回 [ErrAlreadyInitialized]。
// 如果在 Init 之前已通过 New 等函数触发了自动初始化，同样返回 [ErrAlreadyInitialized]。
//
// 与 sync.Once 不同，Init 因配置错误失败后可以再次调用重试。
func Init(opts ...Option) error {
	initMu.Lock()
	defer initMu.Unlock()
	if defaultGen.Load() != nil {
		return ErrAlreadyInitialized
	}
	initCalled = true
	gen, err := NewLockedGenerator(opts...)
	if err != nil {
		return err
	}
	defaultGen.Store(gen)
	return nil
}

// ensureInitialized 确保全局生成器已初始化，返回可用的生成器。
//
// 使用 double-checked locking：快速路径仅需一次原子 Load。
func ensureInitialized() (*LockedGenerator, error) {
	if gen := defaultGen.Load(); gen != nil {
		return gen, nil
	}
	initMu.Lock()
	defer initMu.Unlock()
	if gen := defaultGen.Load(); gen != nil {
		return gen, nil
	}
	// 用户显式调用过 Init 但失败了，不覆盖用户意图
	if initCalled {
		return nil, ErrNotInitialized
	}
	gen, err := NewLockedGenerator()
	if err != nil {
		return nil, err
	}
	defaultGen.Store(gen)
	return gen, nil
}

// New 使用全局共享生成器生成新的 ID。
func New() (uuid.UUID, error) {
	gen, err := ensureInitialized()
	if err != nil {
		return uuid.Nil, err
	}
	return gen.New()
}

// NewWithRetry 使用全局共享生成器生成新的 ID，生成时间领先墙钟过多时等待重试。
// 详见 [Generator.NewWithRetry]。
func NewWithRetry(ctx context.Context) (uuid.UUID, error) {
	gen, err := ensureInitialized()
	if err != nil {
		return uuid.Nil, err
	}
	return gen.NewWithRetry(ctx)
}

// MustNew 与 [New] 相同，失败时 panic。
func MustNew() uuid.UUID {
	gen, err := ensureInitialized()
	if err != nil {
		panic(err)
	}
	return gen.MustNew()
}

// MustNewWithRetry 与 [NewWithRetry] 相同（使用 context.Background()），失败时 panic。
func MustNewWithRetry() uuid.UUID {
	gen, err := ensureInitialized()
	if err != nil {
		panic(err)
	}
	return gen.MustNewWithRetry()
}
