package xtypeid

//go:generate mockgen -source=source.go -destination=source_mock_test.go -package=xtypeid

import (
	"github.com/google/uuid"

	"github.com/omeyang/xtypeid/pkg/util/xid"
)

// Source 提供 TypeID 后缀所需的 128 位值。
//
// [*xid.Generator] 和 [*xid.LockedGenerator] 都实现了此接口。
// 推荐每个 goroutine 持有一个 *xid.Generator 并通过 [NewWithSource] 使用。
type Source interface {
	New() (uuid.UUID, error)
}

// sharedSource 使用 xid 包级共享生成器（内部加锁）。
type sharedSource struct{}

func (sharedSource) New() (uuid.UUID, error) {
	return xid.New()
}

var (
	_ Source = (*xid.Generator)(nil)
	_ Source = (*xid.LockedGenerator)(nil)
	_ Source = sharedSource{}
)
