// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xforget: 固定容量的 forgetting map，按访问次数淘汰最少使用的条目
//
// 设计原则：
//   - 泛型 API，显式错误返回
//   - 单线程语义，由调用方负责并发控制
package util
