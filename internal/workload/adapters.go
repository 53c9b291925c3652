package workload

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/omeyang/xforget/pkg/util/xforget"
)

// 回放只关心命中率，值无关紧要，统一存键本身。

// =============================================================================
// xforget（被测 LFU）
// =============================================================================

// StatsReporter 由能暴露内部统计的 Runner 实现，
// 报告层借此输出快速路径/全量扫描的占比。
type StatsReporter interface {
	Stats() xforget.Stats
}

// forgettingRunner 把 xforget.Map 适配为 Runner。
type forgettingRunner struct {
	m *xforget.Map[string, string]
}

// NewForgetting 创建被测 LFU 映射的 Runner。
// 平局规则固定为键的字典序，保证跨运行可复现。
func NewForgetting(capacity int) (Runner, error) {
	m, err := xforget.New[string, string](xforget.Config{Capacity: capacity},
		func(k1 string, _ string, k2 string, _ string) int {
			return strings.Compare(k1, k2)
		})
	if err != nil {
		return nil, fmt.Errorf("workload: create xforget runner: %w", err)
	}
	return &forgettingRunner{m: m}, nil
}

func (r *forgettingRunner) Name() string { return "xforget" }

func (r *forgettingRunner) Access(key string) bool {
	if _, ok := r.m.Get(key); ok {
		return true
	}
	r.m.Put(key, key)
	return false
}

func (r *forgettingRunner) Update(key string) {
	r.m.Put(key, key)
}

func (r *forgettingRunner) Close() error { return nil }

// Stats 暴露底层映射的统计，供报告输出快速路径/全量扫描占比。
func (r *forgettingRunner) Stats() xforget.Stats {
	return r.m.Stats()
}

// =============================================================================
// simplelru（LRU 基线）
// =============================================================================

// lruRunner 把 hashicorp simplelru 适配为 Runner。
//
// 设计决策: 选用 simplelru 而非带锁的 lru.Cache——回放器保证
// 单 goroutine 访问，无锁实现与 xforget 的单线程契约对等，
// 对比才公平。
type lruRunner struct {
	lru *simplelru.LRU[string, string]
}

// NewLRU 创建 LRU 基线 Runner。
func NewLRU(capacity int) (Runner, error) {
	lru, err := simplelru.NewLRU[string, string](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("workload: create lru runner: %w", err)
	}
	return &lruRunner{lru: lru}, nil
}

func (r *lruRunner) Name() string { return "lru" }

func (r *lruRunner) Access(key string) bool {
	if _, ok := r.lru.Get(key); ok {
		return true
	}
	r.lru.Add(key, key)
	return false
}

func (r *lruRunner) Update(key string) {
	r.lru.Add(key, key)
}

func (r *lruRunner) Close() error { return nil }

// =============================================================================
// ristretto（TinyLFU 基线）
// =============================================================================

// ristrettoRunner 把 ristretto 适配为 Runner。
type ristrettoRunner struct {
	cache *ristretto.Cache[string, string]
}

// NewRistretto 创建 TinyLFU 基线 Runner。
func NewRistretto(capacity int) (Runner, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("workload: create ristretto runner: %w", err)
	}
	return &ristrettoRunner{cache: cache}, nil
}

func (r *ristrettoRunner) Name() string { return "ristretto" }

func (r *ristrettoRunner) Access(key string) bool {
	if _, ok := r.cache.Get(key); ok {
		return true
	}
	r.set(key)
	return false
}

func (r *ristrettoRunner) Update(key string) {
	r.set(key)
}

// set 写入并等待异步缓冲落盘。
//
// 设计决策: ristretto 的 Set 经异步缓冲生效，不 Wait 的话刚写入
// 的键立刻读会 miss，命中率会被系统性低估。逐写 Wait 牺牲吞吐
// 换取与同步实现可比的命中率口径；本包只做策略对比，不做
// 吞吐对比。
func (r *ristrettoRunner) set(key string) {
	r.cache.Set(key, key, 1)
	r.cache.Wait()
}

func (r *ristrettoRunner) Close() error {
	r.cache.Close()
	return nil
}
