// Package xforget 提供固定容量的 LFU（最少访问淘汰）映射实现。
//
// xforget 的核心是「缓存最低位提示 + 惰性失效」的淘汰算法：
// 每个条目记录访问计数，容量满时淘汰计数最低的条目。为避免每次
// 淘汰都全量扫描，Map 维护一个可选的 currentLowest 提示，指向
// 「当前被认为计数最低」的键；提示有效时淘汰走 O(1) 快速路径，
// 提示失效时回退到 O(n) 全量扫描并应用平局比较器。
//
// # 核心特性
//
//   - 泛型支持：任意 comparable 键类型和任意值类型
//   - LFU 淘汰：容量满时淘汰访问计数最低的条目
//   - 可插拔平局规则：多个条目计数并列最低时由调用方提供的
//     全序比较器决定淘汰哪一个
//   - O(1) 均摊：Get 恒为 O(1)；Put 在提示有效时 O(1)，
//     提示失效时单次 O(n) 重新计算
//
// # 配置
//
// Config 结构体提供必需的配置：
//   - Capacity：最大条目数，必须 > 0 且 ≤ 16,777,216
//
// 平局比较器 TieBreak 为必需参数，必须是 (键, 值) 域上的全序。
// 可选配置通过 Option 函数提供：
//   - WithOnEvicted：设置条目被淘汰时的回调函数
//
// # 淘汰语义
//
// Get 命中会递增条目计数；若命中的键正是 currentLowest 提示，
// 提示被置空（该键的计数刚刚增长，不再可信为最低）。
// Put 覆盖已有键只替换值、保留计数，永不触发淘汰。
// Put 新键且容量已满时先淘汰一个条目，再插入新条目并把新键
// 标记为下一个 currentLowest 候选（计数 0，平凡地并列最低）。
//
// # 设计决策
//
// 快速路径是有意的近似：提示指向的键在上次失效之后的某个时刻
// 确实是最低的，但淘汰前不会对照当前状态重新校验，也不会执行
// 平局比较。由此产生一个已文档化的边界情形：刚插入的键若在下一次
// 触发淘汰的 Put 之前从未被 Get 过，将经快速路径被直接淘汰——
// 即使另有条目同样计数为 0 且按比较器本应胜出。只有全量扫描
// 路径才应用 TieBreak。这是性能与精确性之间的刻意取舍，
// 不视为缺陷。
//
// 维护最低位提示而非 O(log n) 的有序结构，换来的是 Get 恒定
// O(1) 且无额外分配；代价是最坏情况下（每次 Get 都使提示失效、
// 每次 Put 都在容量上限）每次淘汰退化为 O(n) 扫描。
//
// # 已知限制
//
//   - 非并发安全：所有方法假定调用方在外部串行化；跨 goroutine
//     使用时必须为每个实例加一把互斥锁（提示与存储是一个
//     读-改-写整体，无法分开同步）
//   - 快速路径绕过 TieBreak：见上文设计决策
//   - 无 TTL、无持久化、无迭代接口：只提供 Get/Put/Len 核心
//     契约及少量只读辅助方法（Peek/Contains）
//   - Clear 会对每个条目触发 OnEvicted，顺序不确定；
//     Clear 移除的条目不计入 Stats 的淘汰计数
//   - 回调在 Put 内同步执行，严禁在回调中调用 Map 自身方法
//
// # 注意事项
//
//   - 访问计数只由 Get 命中递增，创建与覆盖都不会改变它
//   - TieBreak 必须确定且自洽（同一对输入不可给出矛盾结果），
//     Map 不校验全序性质
//   - Peek/Contains 不递增计数、不影响提示，也不计入 Stats
package xforget
