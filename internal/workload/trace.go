package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// 轨迹生成相关错误。
var (
	// ErrInvalidSpec 表示轨迹参数无效。
	ErrInvalidSpec = errors.New("workload: invalid trace spec")
)

// OpKind 定义轨迹操作类型。
type OpKind uint8

const (
	// OpAccess 读操作：查询键，未命中时按 cache-aside 模式回填。
	OpAccess OpKind = iota
	// OpUpdate 写操作：无条件写入键的新值。
	OpUpdate
)

// Op 是轨迹中的一次缓存操作。
type Op struct {
	Kind OpKind
	Key  string
}

// Spec 定义轨迹生成参数。
type Spec struct {
	// Operations 操作总数，必须 > 0。
	Operations int

	// Keyspace 不同键的数量，必须 > 0。键形如 key_0 .. key_{n-1}。
	Keyspace int

	// ReadRatio 读操作占比 [0, 1]，其余为写操作。
	ReadRatio float64

	// ZipfS Zipf 分布的 s 参数，必须 > 1。越大访问越集中。
	ZipfS float64

	// ZipfV Zipf 分布的 v 参数，必须 ≥ 1。
	ZipfV float64

	// Seed 随机种子。相同 Spec 生成相同轨迹。
	Seed uint64
}

// validate 校验轨迹参数。
func (s Spec) validate() error {
	switch {
	case s.Operations <= 0:
		return fmt.Errorf("%w: operations must be greater than 0", ErrInvalidSpec)
	case s.Keyspace <= 0:
		return fmt.Errorf("%w: keyspace must be greater than 0", ErrInvalidSpec)
	case s.ReadRatio < 0 || s.ReadRatio > 1:
		return fmt.Errorf("%w: read ratio must be in [0, 1]", ErrInvalidSpec)
	case s.ZipfS <= 1:
		return fmt.Errorf("%w: zipf s must be greater than 1", ErrInvalidSpec)
	case s.ZipfV < 1:
		return fmt.Errorf("%w: zipf v must be at least 1", ErrInvalidSpec)
	}
	return nil
}

// Generate 生成确定性的访问轨迹。
// 键服从 Zipf 分布（少数热键占大多数访问），操作类型按 ReadRatio
// 独立采样。相同 Spec 的两次调用生成完全相同的轨迹。
func Generate(spec Spec) ([]Op, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(spec.Seed, spec.Seed))
	zipf := rand.NewZipf(rng, spec.ZipfS, spec.ZipfV, uint64(spec.Keyspace-1))

	// 键名预生成，避免回放热路径上的格式化分配
	keys := make([]string, spec.Keyspace)
	for i := range keys {
		keys[i] = fmt.Sprintf("key_%d", i)
	}

	ops := make([]Op, spec.Operations)
	for i := range ops {
		kind := OpAccess
		if rng.Float64() >= spec.ReadRatio {
			kind = OpUpdate
		}
		ops[i] = Op{Kind: kind, Key: keys[zipf.Uint64()]}
	}
	return ops, nil
}
