package benchcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// delim koanf 配置键分隔符。
const delim = "."

// Baselines 控制参与对比的基线缓存。
type Baselines struct {
	// LRU 是否启用 hashicorp simplelru 基线。
	LRU bool `koanf:"lru"`

	// Ristretto 是否启用 ristretto TinyLFU 基线。
	Ristretto bool `koanf:"ristretto"`
}

// Config 定义一次 bench 运行的全部参数。
type Config struct {
	// Capacity 各缓存实例的条目容量。
	Capacity int `koanf:"capacity"`

	// Operations 轨迹操作总数。
	Operations int `koanf:"operations"`

	// Keyspace 不同键的数量。
	Keyspace int `koanf:"keyspace"`

	// ReadRatio 读操作占比 [0, 1]。
	ReadRatio float64 `koanf:"read_ratio"`

	// ZipfS Zipf 分布 s 参数，必须 > 1。
	ZipfS float64 `koanf:"zipf_s"`

	// ZipfV Zipf 分布 v 参数，必须 ≥ 1。
	ZipfV float64 `koanf:"zipf_v"`

	// Seed 轨迹随机种子。
	Seed uint64 `koanf:"seed"`

	// Baselines 参与对比的基线开关。
	Baselines Baselines `koanf:"baselines"`
}

// Default 返回内置默认配置。
func Default() Config {
	return Config{
		Capacity:   1024,
		Operations: 100_000,
		Keyspace:   10_000,
		ReadRatio:  0.9,
		ZipfS:      1.1,
		ZipfV:      1,
		Seed:       1,
		Baselines:  Baselines{LRU: true, Ristretto: true},
	}
}

// Load 从文件加载配置。
// 根据扩展名自动检测格式（.yaml/.yml 或 .json），文件中省略的
// 字段保留 [Default] 的取值，随后统一校验。
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置，需显式指定格式。
func LoadBytes(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, ErrUnsupportedFormat
	}

	k := koanf.New(delim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 校验配置取值。
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be greater than 0", ErrInvalidConfig)
	case c.Operations <= 0:
		return fmt.Errorf("%w: operations must be greater than 0", ErrInvalidConfig)
	case c.Keyspace <= 0:
		return fmt.Errorf("%w: keyspace must be greater than 0", ErrInvalidConfig)
	case c.ReadRatio < 0 || c.ReadRatio > 1:
		return fmt.Errorf("%w: read_ratio must be in [0, 1]", ErrInvalidConfig)
	case c.ZipfS <= 1:
		return fmt.Errorf("%w: zipf_s must be greater than 1", ErrInvalidConfig)
	case c.ZipfV < 1:
		return fmt.Errorf("%w: zipf_v must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}
