package xid

import (
	"io"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// =============================================================================
// 配置
// =============================================================================

// options 内部配置结构
type options struct {
	clock            func() time.Time
	random           io.Reader
	maxDrift         time.Duration
	maxWaitDuration  time.Duration
	maxWaitSet       bool // 区分"未传入"与"显式传入 0"
	retryInterval    time.Duration
	retryIntervalSet bool // 区分"未传入"与"显式传入 0"
	meterProvider    metric.MeterProvider
}

// Option 配置选项函数
type Option func(*options)

// WithClock 设置时钟函数，默认 time.Now。
//
// 主要用于测试注入停滞、回拨或越界的时钟。传入 nil 时忽略。
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.clock = fn
		}
	}
}

// WithRandom 设置随机源，默认 crypto/rand.Reader。
//
// 随机源必须是密码学安全的，否则 62 位随机部分不再提供碰撞防护。
// 传入 nil 时忽略。
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.random = r
		}
	}
}

// WithMaxDrift 设置生成时间允许领先墙钟的最大偏移。
//
// 时钟停滞、回拨或同一毫秒内序列号耗尽时，生成器会强制把时间分量推进到
// 上次输出 +1，可能领先真实时间。默认 0 表示不限制（始终推进，不返回错误）。
// 设置为正值后，领先超过该值时 New 返回 [ErrClockDrift]，
// NewWithRetry 则等待墙钟追上。
// 传入负值会在 NewGenerator 中返回错误（fail-fast）。
func WithMaxDrift(d time.Duration) Option {
	return func(o *options) {
		o.maxDrift = d
	}
}

// WithMaxWaitDuration 设置 NewWithRetry 等待墙钟追上的最大时长。
//
// 默认值为 [DefaultMaxWaitDuration]。
// 传入零值表示"不等待"，首次失败后立即返回 [ErrDriftWaitTimeout]。
// 传入负值会在 NewGenerator 中返回错误（fail-fast）。
func WithMaxWaitDuration(d time.Duration) Option {
	return func(o *options) {
		o.maxWaitDuration = d
		o.maxWaitSet = true
	}
}

// WithRetryInterval 设置 NewWithRetry 的重试间隔。
//
// 默认值为 [DefaultRetryInterval]。
// 传入零值表示"无间隔"，重试不等待直接重新尝试。
// 传入负值会在 NewGenerator 中返回错误（fail-fast）。
func WithRetryInterval(d time.Duration) Option {
	return func(o *options) {
		o.retryInterval = d
		o.retryIntervalSet = true
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider。
//
// 未设置时不记录任何指标，生成路径没有额外开销。传入 nil 时忽略。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}
