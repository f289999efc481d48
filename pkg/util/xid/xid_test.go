package xid

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 全局共享生成器
// =============================================================================

func TestNew_AutoInit(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	id1, err := New()
	require.NoError(t, err)
	id2, err := New()
	require.NoError(t, err)
	assert.True(t, less(id1, id2))

	// 自动初始化后不能再 Init
	assert.ErrorIs(t, Init(), ErrAlreadyInitialized)
}

func TestInit(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	now := time.UnixMilli(1700000000000)
	require.NoError(t, Init(WithClock(fixedClock(now))))
	assert.ErrorIs(t, Init(), ErrAlreadyInitialized)

	c, err := Decompose(MustNew())
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), c.Millis)
}

func TestInit_FailureDisablesAutoInit(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	err := Init(WithRetryInterval(-time.Second))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = NewWithRetry(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Panics(t, func() { MustNew() })
	assert.Panics(t, func() { MustNewWithRetry() })

	// 修复配置后可以重新 Init
	require.NoError(t, Init())
	_, err = New()
	assert.NoError(t, err)
}

func TestNewWithRetry_Global(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	id, err := NewWithRetry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	assert.NotPanics(t, func() {
		assert.NotEqual(t, uuid.Nil, MustNewWithRetry())
	})
}

func TestConcurrentNew_NoCollision(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	const goroutines = 10
	const idsPerGoroutine = 100

	ids := make(chan uuid.UUID, goroutines*idsPerGoroutine)
	done := make(chan struct{})

	for range goroutines {
		go func() {
			for range idsPerGoroutine {
				id, err := New()
				if err != nil {
					t.Errorf("New() error: %v", err)
					break
				}
				ids <- id
			}
			done <- struct{}{}
		}()
	}

	for range goroutines {
		<-done
	}
	close(ids)

	seen := make(map[uuid.UUID]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate ID found: %s", id)
		}
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*idsPerGoroutine)
}

// =============================================================================
// Decompose
// =============================================================================

func TestDecompose_KnownValue(t *testing.T) {
	id := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")

	c, err := Decompose(id)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, int64(1688096058518), c.Millis)
	assert.Equal(t, time.Date(2023, 6, 30, 3, 34, 18, 518000000, time.UTC), c.Time)
	assert.Equal(t, uint16(0x74b), c.Sequence)
	assert.Equal(t, uint64(0x3cceb302099a8057), c.Random)
}

func TestDecompose_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		id   uuid.UUID
	}{
		{"nil", uuid.Nil},
		{"max", uuid.Max},
		{"v4", uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")},
		{"v7 wrong variant", uuid.MustParse("01890a5d-ac96-774b-ccce-b302099a8057")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.id)
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}
}

func TestDecompose_RoundTrip(t *testing.T) {
	now := time.UnixMilli(1700000000123).Add(256 * 10 * time.Nanosecond)
	gen, err := NewGenerator(WithClock(fixedClock(now)), WithRandom(constReader(0x5A)))
	require.NoError(t, err)

	c, err := Decompose(gen.MustNew())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), c.Millis)
	assert.Equal(t, uint16(10), c.Sequence)
	assert.Equal(t, uint64(0x5A5A5A5A5A5A5A5A)&randomMask, c.Random)
}

// =============================================================================
// Fuzz 测试
// =============================================================================

func FuzzDecompose(f *testing.F) {
	f.Add(make([]byte, 16))
	f.Add([]byte{0x01, 0x89, 0x0a, 0x5d, 0xac, 0x96, 0x77, 0x4b, 0xbc, 0xce, 0xb3, 0x02, 0x09, 0x9a, 0x80, 0x57})

	f.Fuzz(func(t *testing.T, b []byte) {
		var id uuid.UUID
		copy(id[:], b)
		c, err := Decompose(id)
		if err != nil {
			return
		}
		// 合法 ID 的各部分必须在位宽之内
		if c.Millis < 0 || c.Millis > maxTimeValue {
			t.Fatalf("millis %d out of range", c.Millis)
		}
		if c.Sequence > sequenceMask {
			t.Fatalf("sequence %d out of range", c.Sequence)
		}
		if c.Random > randomMask {
			t.Fatalf("random %x out of range", c.Random)
		}
	})
}
