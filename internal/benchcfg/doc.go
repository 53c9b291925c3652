// Package benchcfg 提供 xforgebench 的配置加载。
//
// 本包是 internal 包，仅供 cmd/xforgebench 使用。配置文件基于
// koanf 加载，按扩展名自动识别 YAML/JSON，缺省字段回落到内置
// 默认值，加载后统一校验。
//
// 示例配置（YAML）：
//
//	capacity: 1024
//	operations: 100000
//	keyspace: 10000
//	read_ratio: 0.9
//	zipf_s: 1.1
//	zipf_v: 1
//	seed: 1
//	baselines:
//	  lru: true
//	  ristretto: true
package benchcfg
