package xforget

// entry 把存储值和它的访问计数绑定为一条记录，整体持有在
// 存储 map 内，避免第二个并行结构带来的额外查找。
//
// count 只由 Get 命中递增，创建时为 0，覆盖保留原值，永不递减。
type entry[V any] struct {
	value V
	count uint64
}
