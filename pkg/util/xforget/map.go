package xforget

// maxCapacity 条目数上限。
const maxCapacity = 1 << 24 // 16,777,216

// Config 定义映射配置。
type Config struct {
	// Capacity 最大条目数。
	// 必须大于 0 且不超过 16,777,216。
	Capacity int
}

// TieBreak 是 (键, 值) 域上的全序比较器，仅在 ≥2 个条目并列
// 最低访问计数时被调用，比较器意义下的最小者被淘汰。
// 返回值遵循 cmp.Compare 约定：负数表示第一个条目排在前面。
//
// 设计决策: 签名直接接受键值分量而非 (K, V) 对对象，
// 避免全量扫描热路径上为比较构造临时对象的分配开销。
type TieBreak[K comparable, V any] func(k1 K, v1 V, k2 K, v2 V) int

// Option 定义映射可选配置函数类型。
type Option[K comparable, V any] func(*options[K, V])

// options 内部可选配置。
type options[K comparable, V any] struct {
	onEvicted func(key K, value V)
}

// WithOnEvicted 设置条目被淘汰时的回调函数。
//
// 回调在 Put（以及 Clear）内同步执行。调用方必须遵守：
//   - 严禁在回调中调用 Map 自身的任何方法
//   - 应避免耗时操作，以免拖慢插入路径
func WithOnEvicted[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvicted = fn
	}
}

// Stats 是映射运行统计的快照。
// 计数只覆盖 Get/Put 核心路径：Peek/Contains 不计入，
// Clear 移除的条目不计入 Evictions。
type Stats struct {
	// Hits Get 命中次数。
	Hits uint64
	// Misses Get 未命中次数。
	Misses uint64
	// Evictions 因容量压力淘汰的条目总数。
	Evictions uint64
	// FastPathEvictions 经 currentLowest 提示以 O(1) 完成的淘汰数。
	FastPathEvictions uint64
	// FullScans 提示失效后退化为 O(n) 全量扫描的淘汰数。
	FullScans uint64
	// HitRatio 命中率，Hits / (Hits + Misses)，无访问时为 0。
	HitRatio float64
}

// Map 是固定容量的 LFU 映射（forgetting map）。
// 必须通过 [New] 创建，零值不可用。
//
// 非并发安全：所有方法假定由调用方外部串行化。提示字段与存储
// 是一个读-改-写整体，并发使用必须以实例级互斥锁包裹每次调用。
type Map[K comparable, V any] struct {
	store    map[K]*entry[V]
	capacity int
	tieBreak TieBreak[K, V]

	// lowest/hasLowest 共同构成可选的 currentLowest 提示：
	// hasLowest 为 false 表示「未知」，下次淘汰必须全量扫描；
	// 为 true 时 lowest 指向被认为计数最低的键，且该键必定
	// 仍在 store 中。显式布尔位使「未知」状态不可被误读为
	// 某个键类型的零值。
	lowest    K
	hasLowest bool

	onEvicted func(key K, value V)

	hits          uint64
	misses        uint64
	evictions     uint64
	fastEvictions uint64
	fullScans     uint64
}

// New 创建新的 LFU 映射。
// 如果 cfg.Capacity <= 0，返回 ErrInvalidCapacity。
// 如果 cfg.Capacity > 16,777,216，返回 ErrCapacityExceedsMax。
// 如果 tieBreak 为 nil，返回 ErrNilTieBreak。
func New[K comparable, V any](cfg Config, tieBreak TieBreak[K, V], opts ...Option[K, V]) (*Map[K, V], error) {
	if cfg.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if cfg.Capacity > maxCapacity {
		return nil, ErrCapacityExceedsMax
	}
	if tieBreak == nil {
		return nil, ErrNilTieBreak
	}

	o := &options[K, V]{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return &Map[K, V]{
		store:     make(map[K]*entry[V], cfg.Capacity),
		capacity:  cfg.Capacity,
		tieBreak:  tieBreak,
		onEvicted: o.onEvicted,
	}, nil
}

// Get 获取键对应的值并递增其访问计数。
// 键不存在时返回零值和 false，不影响 currentLowest 提示。
//
// 设计决策: 命中的键若正是 currentLowest 提示，提示被置空——
// 该键的计数刚刚增长，不再可信为最低，但此刻重新计算真正的
// 最低位需要 O(n)，推迟到下次淘汰时再做。
// Get 永不触发淘汰。
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	e, ok := m.store[key]
	if !ok {
		m.misses++
		return value, false
	}
	if m.hasLowest && key == m.lowest {
		m.invalidateLowest()
	}
	e.count++
	m.hits++
	return e.value, true
}

// Put 插入或覆盖键值对，返回先前的值（如有）。
//
//   - 键已存在：替换值、保留访问计数，返回旧值和 true。
//     覆盖完全跳过容量检查，永不淘汰——包括覆盖当前淘汰候选。
//   - 新键且未满：以计数 0 插入，返回零值和 false。
//   - 新键且已满：先淘汰一个条目（见下），再以计数 0 插入，
//     并把新键标记为下一个 currentLowest 候选。
//
// 淘汰选择：提示有效时直接移除提示键，O(1)，不重新校验也不做
// 平局比较（有意的近似）；提示失效时 O(n) 全量扫描取计数最低者，
// 多个并列时以 TieBreak 的最小者为被淘汰者。
func (m *Map[K, V]) Put(key K, value V) (previous V, existed bool) {
	if e, ok := m.store[key]; ok {
		previous = e.value
		e.value = value
		return previous, true
	}

	if len(m.store) >= m.capacity {
		m.evict()
		m.lowest, m.hasLowest = key, true
	}

	m.store[key] = &entry[V]{value: value}
	return previous, false
}

// Len 返回当前条目数，恒 ≤ Capacity()。
func (m *Map[K, V]) Len() int {
	return len(m.store)
}

// Capacity 返回构造时固定的容量上限。
func (m *Map[K, V]) Capacity() int {
	return m.capacity
}

// Peek 获取键对应的值，但不递增访问计数、不影响提示。
// 适用于检查映射状态而不干扰淘汰策略的场景。
func (m *Map[K, V]) Peek(key K) (value V, ok bool) {
	e, ok := m.store[key]
	if !ok {
		return value, false
	}
	return e.value, true
}

// Contains 检查键是否存在，不产生任何计数副作用。
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.store[key]
	return ok
}

// Clear 清空所有条目并重置提示。
// 对每个被移除的条目触发 OnEvicted，顺序不确定；
// 这些移除不计入 Stats 的淘汰计数。统计计数器保留。
func (m *Map[K, V]) Clear() {
	if m.onEvicted != nil {
		for k, e := range m.store {
			m.onEvicted(k, e.value)
		}
	}
	m.store = make(map[K]*entry[V], m.capacity)
	m.invalidateLowest()
}

// Stats 返回运行统计快照。
func (m *Map[K, V]) Stats() Stats {
	total := m.hits + m.misses
	var ratio float64
	if total > 0 {
		ratio = float64(m.hits) / float64(total)
	}
	return Stats{
		Hits:              m.hits,
		Misses:            m.misses,
		Evictions:         m.evictions,
		FastPathEvictions: m.fastEvictions,
		FullScans:         m.fullScans,
		HitRatio:          ratio,
	}
}

// invalidateLowest 把提示置回「未知」状态。
func (m *Map[K, V]) invalidateLowest() {
	var zero K
	m.lowest, m.hasLowest = zero, false
}

// evict 移除一个最少访问的条目。仅在 Put 的容量已满分支调用，
// 调用时 store 非空。
func (m *Map[K, V]) evict() {
	var victim K
	if m.hasLowest {
		victim = m.lowest
		m.invalidateLowest()
		m.fastEvictions++
	} else {
		victim = m.scanLowest()
		m.fullScans++
	}

	e := m.store[victim]
	delete(m.store, victim)
	m.evictions++

	if m.onEvicted != nil {
		m.onEvicted(victim, e.value)
	}
}

// scanLowest 全量扫描选出访问计数最低的键；多个并列时返回
// TieBreak 意义下的最小者。比较器是全序，故结果与 map 的
// 随机遍历顺序无关。
func (m *Map[K, V]) scanLowest() K {
	var best K
	var bestEntry *entry[V]
	for k, e := range m.store {
		switch {
		case bestEntry == nil:
			best, bestEntry = k, e
		case e.count < bestEntry.count:
			best, bestEntry = k, e
		case e.count == bestEntry.count && m.tieBreak(k, e.value, best, bestEntry.value) < 0:
			best, bestEntry = k, e
		}
	}
	return best
}
