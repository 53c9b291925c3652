package workload

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runner 把一个缓存实现统一为 cache-aside 访问接口。
// 实现不要求并发安全：回放器保证每个 Runner 只被一个
// goroutine 访问。
type Runner interface {
	// Name 返回实现名称，用于报告。
	Name() string

	// Access 查询键并返回是否命中；未命中时实现负责回填。
	Access(key string) (hit bool)

	// Update 无条件写入键的新值。
	Update(key string)

	// Close 释放实现持有的资源。无资源的实现返回 nil。
	Close() error
}

// Result 是单个 Runner 回放一条轨迹后的统计结果。
type Result struct {
	// Name Runner 名称。
	Name string
	// Hits Access 命中次数。
	Hits uint64
	// Misses Access 未命中次数。
	Misses uint64
	// Updates 写操作次数。
	Updates uint64
	// HitRatio 命中率，Hits / (Hits + Misses)，无读操作时为 0。
	HitRatio float64
}

// checkInterval 回放循环检查 ctx 取消的操作间隔。
const checkInterval = 1024

// Replay 把同一条轨迹回放到每个 Runner 上并汇总结果。
//
// 设计决策: 每个 Runner 独占一个 goroutine 并发回放——各缓存
// 实例内部仍是单线程访问，不违反 xforget 的串行化契约；Runner
// 之间互不共享状态，结果按下标写入各自的槽位，无需加锁。
// ctx 取消时整组回放尽快返回 ctx 的错误。
func Replay(ctx context.Context, ops []Op, runners []Runner) ([]Result, error) {
	results := make([]Result, len(runners))

	g, ctx := errgroup.WithContext(ctx)
	for i, r := range runners {
		g.Go(func() error {
			res := Result{Name: r.Name()}
			for n, op := range ops {
				if n%checkInterval == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				switch op.Kind {
				case OpAccess:
					if r.Access(op.Key) {
						res.Hits++
					} else {
						res.Misses++
					}
				case OpUpdate:
					r.Update(op.Key)
					res.Updates++
				}
			}
			if total := res.Hits + res.Misses; total > 0 {
				res.HitRatio = float64(res.Hits) / float64(total)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
