package xforget

import "errors"

var (
	// ErrInvalidCapacity 表示容量配置无效。
	ErrInvalidCapacity = errors.New("xforget: capacity must be greater than 0")

	// ErrCapacityExceedsMax 表示容量超过上限 (16,777,216)。
	ErrCapacityExceedsMax = errors.New("xforget: capacity must not exceed 16777216")

	// ErrNilTieBreak 表示未提供平局比较器。
	ErrNilTieBreak = errors.New("xforget: tie-break comparator must not be nil")
)
