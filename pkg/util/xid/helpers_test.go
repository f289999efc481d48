package xid

import (
	"bytes"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// resetGlobal 重置全局状态，仅用于测试
func resetGlobal() {
	initMu.Lock()
	defer initMu.Unlock()
	defaultGen.Store(nil)
	initCalled = false
}

// fixedClock 返回始终停在 t 的时钟。
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// manualClock 可由测试 goroutine 之外安全推进的时钟。
type manualClock struct {
	nanos atomic.Int64
}

func newManualClock(t time.Time) *manualClock {
	c := &manualClock{}
	c.nanos.Store(t.UnixNano())
	return c
}

func (c *manualClock) Now() time.Time {
	return time.Unix(0, c.nanos.Load())
}

func (c *manualClock) Set(t time.Time) {
	c.nanos.Store(t.UnixNano())
}

// constReader 无限输出同一字节。
type constReader byte

func (r constReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

// flakyReader 前 fail 次读取失败，之后输出 0xAB。
type flakyReader struct {
	fail int
}

var errBoom = errors.New("boom")

func (r *flakyReader) Read(p []byte) (int, error) {
	if r.fail > 0 {
		r.fail--
		return 0, errBoom
	}
	return constReader(0xAB).Read(p)
}

// less 按无符号 128 位整数比较。
func less(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
