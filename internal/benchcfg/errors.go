package benchcfg

import "errors"

// 配置加载和校验相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("benchcfg: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("benchcfg: unsupported config format")

	// ErrLoadFailed 表示配置读取失败。
	ErrLoadFailed = errors.New("benchcfg: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("benchcfg: failed to parse config")

	// ErrInvalidConfig 表示配置取值非法。
	ErrInvalidConfig = errors.New("benchcfg: invalid config")
)
