package xid

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Generator - 单所有者生成器
// =============================================================================

// Generator 时间有序的 128 位 ID 生成器。
//
// Generator 不做内部同步：一个实例应只由一个 goroutine 使用，
// 这是默认且推荐的用法（无锁、无竞争）。需要跨 goroutine 共享时，
// 使用 [LockedGenerator] 或包级函数 [New]。
//
// 同一实例的输出按无符号 128 位整数严格递增，与墙钟是否停滞、回拨无关。
// 不同实例之间没有顺序保证，唯一性仅由 62 位随机数提供。
type Generator struct {
	// last 上次输出的组合计数器：毫秒 << 12 | 序列号
	last uint64

	clock           func() time.Time
	random          io.Reader
	maxDriftMillis  uint64 // 0 表示不限制
	maxWaitDuration time.Duration
	retryInterval   time.Duration
	metrics         *instruments

	buf [8]byte
}

// NewGenerator 创建新的 ID 生成器实例。
//
// 每次调用都会创建独立的生成器，状态互不共享。
// nil Option 静默跳过，便于条件式构建 Option 列表。
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	// fail-fast：先校验配置参数
	if cfg.maxDrift < 0 {
		return nil, fmt.Errorf("%w: max drift must be non-negative, got %s", ErrInvalidConfig, cfg.maxDrift)
	}
	if cfg.maxWaitDuration < 0 {
		return nil, fmt.Errorf("%w: max wait duration must be non-negative, got %s", ErrInvalidConfig, cfg.maxWaitDuration)
	}
	if cfg.retryInterval < 0 {
		return nil, fmt.Errorf("%w: retry interval must be non-negative, got %s", ErrInvalidConfig, cfg.retryInterval)
	}

	g := &Generator{
		clock:           time.Now,
		random:          rand.Reader,
		maxWaitDuration: DefaultMaxWaitDuration,
		retryInterval:   DefaultRetryInterval,
	}
	if cfg.clock != nil {
		g.clock = cfg.clock
	}
	if cfg.random != nil {
		g.random = cfg.random
	}
	if cfg.maxDrift > 0 {
		// 不足 1ms 的偏移向上取整，避免被截断为"不限制"
		g.maxDriftMillis = uint64((cfg.maxDrift + time.Millisecond - 1) / time.Millisecond)
	}
	if cfg.maxWaitSet {
		g.maxWaitDuration = cfg.maxWaitDuration
	}
	if cfg.retryIntervalSet {
		g.retryInterval = cfg.retryInterval
	}
	if cfg.meterProvider != nil {
		m, err := newInstruments(cfg.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		g.metrics = m
	}
	return g, nil
}

// validate 校验生成器实例是否可用。
// 防止零值 Generator 或 nil *Generator 导致 nil pointer panic。
func (g *Generator) validate() error {
	if g == nil || g.clock == nil || g.random == nil {
		return ErrNilGenerator
	}
	return nil
}

// New 生成新的 ID。
//
// 错误：
//   - [ErrOverTimeLimit]：时钟早于 Unix 纪元，或时间分量超出 48 位（不可恢复）
//   - [ErrClockDrift]：启用 [WithMaxDrift] 且生成时间领先墙钟过多
//   - [ErrRandom]：随机源读取失败
//
// 失败时生成器状态不变。
func (g *Generator) New() (uuid.UUID, error) {
	if err := g.validate(); err != nil {
		return uuid.Nil, err
	}
	id, adjusted, err := g.next()
	if err != nil {
		g.metrics.recordError(err)
		return uuid.Nil, err
	}
	g.metrics.recordGenerated(adjusted)
	return id, nil
}

// next 执行一次生成。adjusted 报告时间分量是否被强制推进。
func (g *Generator) next() (id uuid.UUID, adjusted bool, err error) {
	now := g.clock()
	ms := now.UnixMilli()
	if ms < 0 || uint64(ms) > maxTimeValue {
		return uuid.Nil, false, fmt.Errorf("%w: clock reading %s out of range", ErrOverTimeLimit, now.UTC().Format(time.RFC3339Nano))
	}
	nowCombined := uint64(ms)<<sequenceBits | subMillisSequence(now)

	ts := nowCombined
	if nowCombined <= g.last {
		ts = g.last + 1
		adjusted = true
	}

	tsMillis := ts >> sequenceBits
	if tsMillis > maxTimeValue {
		return uuid.Nil, adjusted, fmt.Errorf("%w: timestamp exhausted", ErrOverTimeLimit)
	}
	if g.maxDriftMillis > 0 && tsMillis > uint64(ms)+g.maxDriftMillis {
		return uuid.Nil, adjusted, fmt.Errorf("%w: ahead of wall clock by %dms", ErrClockDrift, tsMillis-uint64(ms))
	}

	if _, err := io.ReadFull(g.random, g.buf[:]); err != nil {
		return uuid.Nil, adjusted, fmt.Errorf("%w: %w", ErrRandom, err)
	}
	g.last = ts

	binary.BigEndian.PutUint64(id[:8], tsMillis<<16|versionBits<<12|ts&sequenceMask)
	binary.BigEndian.PutUint64(id[8:], variantBits<<62|binary.BigEndian.Uint64(g.buf[:])&randomMask)
	return id, adjusted, nil
}

// subMillisSequence 将毫秒内的纳秒余数映射到 12 位序列号。
//
// 右移 8 位：999,999 >> 8 = 3906，保留同一毫秒内的时间顺序，
// 剩余 3907-4095 作为强制推进时的余量。
func subMillisSequence(t time.Time) uint64 {
	return uint64(t.Nanosecond()%int(time.Millisecond)) >> 8
}

// NewWithRetry 生成新的 ID，生成时间领先墙钟过多时等待重试。
//
// 仅 [ErrClockDrift] 会触发等待；其余错误立即返回。
// 每隔 retryInterval 重试一次，累计超过 maxWaitDuration 返回 [ErrDriftWaitTimeout]。
// 支持通过 context 取消等待。ctx 为 nil 时返回 [ErrNilContext]。
func (g *Generator) NewWithRetry(ctx context.Context) (uuid.UUID, error) {
	if err := g.validate(); err != nil {
		return uuid.Nil, err
	}
	return retryNew(ctx, g.New, g.maxWaitDuration, g.retryInterval)
}

// MustNew 生成新的 ID，失败时 panic。
func (g *Generator) MustNew() uuid.UUID {
	id, err := g.New()
	if err != nil {
		panic(err)
	}
	return id
}

// MustNewWithRetry 与 NewWithRetry 相同，失败时 panic。
//
// 内部使用 context.Background()。如需自定义 context，请使用 NewWithRetry。
func (g *Generator) MustNewWithRetry() uuid.UUID {
	id, err := g.NewWithRetry(context.Background())
	if err != nil {
		panic(err)
	}
	return id
}

// retryNew 处理 NewWithRetry 的等待循环。
// 以循环而非递归实现，持续失败时栈不会增长。
func retryNew(ctx context.Context, gen func() (uuid.UUID, error), maxWait, interval time.Duration) (uuid.UUID, error) {
	if ctx == nil {
		return uuid.Nil, ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	// 快速路径：首次尝试成功则不创建 timer
	id, err := gen()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrClockDrift) {
		return uuid.Nil, err
	}

	deadline := time.Now().Add(maxWait)
	lastErr := err
	timer := time.NewTimer(0)
	<-timer.C // 排空初始触发
	defer timer.Stop()

	for {
		// 按剩余时间裁剪等待间隔，避免超过 maxWait
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return uuid.Nil, fmt.Errorf("%w: %w", ErrDriftWaitTimeout, lastErr)
		}

		timer.Reset(min(interval, remaining))
		select {
		case <-ctx.Done():
			return uuid.Nil, ctx.Err()
		case <-timer.C:
		}

		id, err := gen()
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrClockDrift) {
			return uuid.Nil, err
		}
		lastErr = err
	}
}

// =============================================================================
// LockedGenerator - 可共享的加锁生成器
// =============================================================================

// LockedGenerator 用互斥锁包装 [Generator]，可被多个 goroutine 共享。
//
// 所有调用方的生成操作被串行化，高并发下会成为吞吐瓶颈。
// 能为每个 goroutine 分配独立 [Generator] 时应优先那样做。
// 单调性保证对所有共享者的整体调用顺序成立。
type LockedGenerator struct {
	mu  sync.Mutex
	gen *Generator
}

// NewLockedGenerator 创建可共享的生成器。选项与 [NewGenerator] 相同。
func NewLockedGenerator(opts ...Option) (*LockedGenerator, error) {
	gen, err := NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	return &LockedGenerator{gen: gen}, nil
}

func (l *LockedGenerator) validate() error {
	if l == nil {
		return ErrNilGenerator
	}
	return l.gen.validate()
}

// New 生成新的 ID。语义同 [Generator.New]。
func (l *LockedGenerator) New() (uuid.UUID, error) {
	if err := l.validate(); err != nil {
		return uuid.Nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen.New()
}

// NewWithRetry 语义同 [Generator.NewWithRetry]。等待期间不持有锁。
func (l *LockedGenerator) NewWithRetry(ctx context.Context) (uuid.UUID, error) {
	if err := l.validate(); err != nil {
		return uuid.Nil, err
	}
	return retryNew(ctx, l.New, l.gen.maxWaitDuration, l.gen.retryInterval)
}

// MustNew 生成新的 ID，失败时 panic。
func (l *LockedGenerator) MustNew() uuid.UUID {
	id, err := l.New()
	if err != nil {
		panic(err)
	}
	return id
}

// MustNewWithRetry 与 NewWithRetry 相同，失败时 panic。
func (l *LockedGenerator) MustNewWithRetry() uuid.UUID {
	id, err := l.NewWithRetry(context.Background())
	if err != nil {
		panic(err)
	}
	return id
}
