// Package xid 提供时间有序的 128 位 ID 生成能力。
//
// # 设计理念
//
// xid 生成 UUIDv7 位布局的 ID（[github.com/google/uuid.UUID]），作为 xtypeid 的后缀来源。
// 主要特点：
//   - 单实例输出严格递增，与墙钟停滞、回拨或精度不足无关
//   - 毫秒内使用 12 位亚毫秒序列号，同一毫秒生成的 ID 仍按时间排序
//   - 62 位密码学随机数，不同实例之间无需协调
//   - 默认每个 goroutine 一个生成器，无锁；共享生成器需显式选择
//
// # ID 结构
//
//	48 bits - Unix 毫秒时间戳（可用至约公元 10889 年）
//	 4 bits - 版本 0111
//	12 bits - 毫秒内序列号
//	 2 bits - 变体 10
//	62 bits - 随机数
//
// # 单调性
//
// 生成器把 (毫秒 << 12 | 序列号) 组合成一个计数器并记录上次输出值。
// 当前读数不大于上次输出时，直接使用上次输出 +1，即使因此领先真实时间。
// 序列号由毫秒内纳秒余数右移 8 位得到（0-3906），保留同一毫秒内的顺序。
//
// # 快速开始
//
// 推荐：每个 goroutine 持有自己的生成器：
//
//	gen, err := xid.NewGenerator()
//	if err != nil {
//	    return err
//	}
//	id, err := gen.New()
//
// 便捷用法（全局共享，内部加锁）：
//
//	id, err := xid.New()
//
// # 共享生成器的取舍
//
// [LockedGenerator] 和包级函数 [New]/[NewWithRetry] 用一把互斥锁串行化所有生成操作，
// 高并发下吞吐受限于锁竞争。
// 热点路径请为每个 goroutine 创建独立的 [Generator]（见 BenchmarkLockedGenerator_Parallel）。
//
// # 时间领先与重试
//
// 默认情况下强制推进不设上限，New 不会因时钟问题失败。
// 通过 [WithMaxDrift] 可以限制生成时间领先墙钟的幅度：超过上限时 New 返回 [ErrClockDrift]，
// NewWithRetry 按 [WithRetryInterval] 间隔等待墙钟追上，最长 [WithMaxWaitDuration]，
// 超时返回 [ErrDriftWaitTimeout]。等待支持 context 取消。
//
// # 错误
//
//   - [ErrOverTimeLimit]：时钟早于 Unix 纪元或超出 48 位毫秒范围，不可恢复
//   - [ErrRandom]：随机源读取失败
//   - [ErrClockDrift] / [ErrDriftWaitTimeout]：仅在启用 WithMaxDrift 时出现
//
// # 指标
//
// 通过 [WithMeterProvider] 接入 OpenTelemetry 后记录：
//
//	xtypeid.xid.generated       生成的 ID 数
//	xtypeid.xid.clock_adjusted  时间分量被强制推进的 ID 数
//	xtypeid.xid.errors          失败次数（属性 reason）
package xid
