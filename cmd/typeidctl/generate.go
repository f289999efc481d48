package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xtypeid/pkg/util/xid"
	"github.com/omeyang/xtypeid/pkg/util/xtypeid"
)

// retrySource 把 xid.Generator 的带等待生成适配为 xtypeid.Source。
// 只有启用 max_drift 时 NewWithRetry 才会等待。
type retrySource struct {
	ctx context.Context
	gen *xid.Generator
}

func (s retrySource) New() (uuid.UUID, error) {
	return s.gen.NewWithRetry(s.ctx)
}

// generate 用 workers 个 goroutine 生成 count 个 TypeID。
//
// 每个 worker 持有自己的 xid.Generator 并负责一段连续区间，
// 因此结果按 worker 分段，段内严格递增；段之间没有顺序保证。
// 任一 worker 失败时取消其余 worker。
func generate(ctx context.Context, prefix string, count, workers int, opts []xid.Option) ([]xtypeid.TypeID, error) {
	if count < 1 {
		return nil, nil
	}
	workers = max(1, min(workers, count))
	ids := make([]xtypeid.TypeID, count)
	chunk := (count + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, count)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			gen, err := xid.NewGenerator(opts...)
			if err != nil {
				return err
			}
			src := retrySource{ctx: ctx, gen: gen}
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				id, err := xtypeid.NewWithSource(src, prefix)
				if err != nil {
					return fmt.Errorf("worker %d: %w", w, err)
				}
				ids[i] = id
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
