// Package workload 提供确定性的缓存访问轨迹生成与回放。
//
// 本包是 internal 包，仅供 cmd/xforgebench 使用，用于把 xforget
// 的 LFU 策略与基线缓存（hashicorp simplelru 的 LRU、ristretto 的
// TinyLFU）放在同一条轨迹下对比命中率。
//
// 主要功能：
//   - Zipf 分布的键访问轨迹生成（固定种子，可复现）
//   - Runner 适配器：xforget / simplelru / ristretto 统一为
//     cache-aside 访问接口
//   - 并发回放：每个 Runner 独占一个 goroutine（各缓存实例内部
//     保持单线程契约），errgroup 汇聚
package workload
