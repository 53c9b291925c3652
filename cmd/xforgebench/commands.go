package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xforget/internal/benchcfg"
	"github.com/omeyang/xforget/internal/workload"
	"github.com/omeyang/xforget/pkg/util/xforget"
)

// usageError 表示用户输入（flag 或配置文件）非法，映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createRunCommand(),
		createDemoCommand(),
	}
}

// createRunCommand 创建 run 子命令。
func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "生成轨迹并在 xforget 与基线缓存上回放对比",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.IntFlag{
				Name:    "capacity",
				Aliases: []string{"n"},
				Usage:   "各缓存实例的条目容量",
			},
			&cli.IntFlag{
				Name:    "operations",
				Aliases: []string{"o"},
				Usage:   "轨迹操作总数",
			},
			&cli.IntFlag{
				Name:    "keyspace",
				Aliases: []string{"k"},
				Usage:   "不同键的数量",
			},
			&cli.FloatFlag{
				Name:  "read-ratio",
				Usage: "读操作占比 [0, 1]",
			},
			&cli.FloatFlag{
				Name:  "zipf-s",
				Usage: "Zipf 分布 s 参数（> 1）",
			},
			&cli.FloatFlag{
				Name:  "zipf-v",
				Usage: "Zipf 分布 v 参数（≥ 1）",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "轨迹随机种子",
			},
			&cli.BoolFlag{
				Name:  "no-lru",
				Usage: "不运行 simplelru LRU 基线",
			},
			&cli.BoolFlag{
				Name:  "no-ristretto",
				Usage: "不运行 ristretto TinyLFU 基线",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}
			return cmdRun(ctx, cfg)
		},
	}
}

// createDemoCommand 创建 demo 子命令。
func createDemoCommand() *cli.Command {
	return &cli.Command{
		Name:    "demo",
		Aliases: []string{"d"},
		Usage:   "演示 forgetting map 的淘汰行为",
		Action: func(_ context.Context, _ *cli.Command) error {
			return cmdDemo(os.Stdout)
		},
	}
}

// loadRunConfig 汇集 run 的参数：flag > 配置文件 > 内置默认值。
// 任何来源的非法取值都归类为参数错误（退出码 2）。
func loadRunConfig(cmd *cli.Command) (benchcfg.Config, error) {
	cfg := benchcfg.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := benchcfg.Load(path)
		if err != nil {
			return benchcfg.Config{}, &usageError{msg: err.Error()}
		}
		cfg = loaded
	}

	if cmd.IsSet("capacity") {
		cfg.Capacity = cmd.Int("capacity")
	}
	if cmd.IsSet("operations") {
		cfg.Operations = cmd.Int("operations")
	}
	if cmd.IsSet("keyspace") {
		cfg.Keyspace = cmd.Int("keyspace")
	}
	if cmd.IsSet("read-ratio") {
		cfg.ReadRatio = cmd.Float("read-ratio")
	}
	if cmd.IsSet("zipf-s") {
		cfg.ZipfS = cmd.Float("zipf-s")
	}
	if cmd.IsSet("zipf-v") {
		cfg.ZipfV = cmd.Float("zipf-v")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = uint64(cmd.Int("seed"))
	}
	if cmd.Bool("no-lru") {
		cfg.Baselines.LRU = false
	}
	if cmd.Bool("no-ristretto") {
		cfg.Baselines.Ristretto = false
	}

	if err := cfg.Validate(); err != nil {
		return benchcfg.Config{}, &usageError{msg: err.Error()}
	}
	return cfg, nil
}

// cmdRun 生成轨迹、构建 Runner 并回放，结果以表格输出到 stdout。
func cmdRun(ctx context.Context, cfg benchcfg.Config) error {
	runID := uuid.NewString()
	logger := slog.Default().With(slog.String("run_id", runID))

	logger.Info("generating trace",
		slog.Int("operations", cfg.Operations),
		slog.Int("keyspace", cfg.Keyspace),
		slog.Uint64("seed", cfg.Seed),
	)

	ops, err := workload.Generate(workload.Spec{
		Operations: cfg.Operations,
		Keyspace:   cfg.Keyspace,
		ReadRatio:  cfg.ReadRatio,
		ZipfS:      cfg.ZipfS,
		ZipfV:      cfg.ZipfV,
		Seed:       cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("generate trace: %w", err)
	}

	runners, err := buildRunners(cfg)
	if err != nil {
		return err
	}
	defer func() {
		for _, r := range runners {
			if cerr := r.Close(); cerr != nil {
				logger.Warn("close runner", slog.String("runner", r.Name()), slog.Any("error", cerr))
			}
		}
	}()

	logger.Debug("replaying trace", slog.Int("runners", len(runners)))
	results, err := workload.Replay(ctx, ops, runners)
	if err != nil {
		return fmt.Errorf("replay trace: %w", err)
	}

	printResults(os.Stdout, cfg, results)
	for _, r := range runners {
		if sr, ok := r.(workload.StatsReporter); ok {
			printForgetStats(os.Stdout, sr.Stats())
		}
	}

	logger.Info("run complete", slog.Int("results", len(results)))
	return nil
}

// buildRunners 按配置构建被测映射与启用的基线。
// 失败时关闭已创建的 Runner，不泄漏 ristretto 的后台 goroutine。
func buildRunners(cfg benchcfg.Config) ([]workload.Runner, error) {
	var runners []workload.Runner
	closeAll := func() {
		for _, r := range runners {
			_ = r.Close()
		}
	}

	forgetting, err := workload.NewForgetting(cfg.Capacity)
	if err != nil {
		return nil, err
	}
	runners = append(runners, forgetting)

	if cfg.Baselines.LRU {
		lru, err := workload.NewLRU(cfg.Capacity)
		if err != nil {
			closeAll()
			return nil, err
		}
		runners = append(runners, lru)
	}
	if cfg.Baselines.Ristretto {
		rist, err := workload.NewRistretto(cfg.Capacity)
		if err != nil {
			closeAll()
			return nil, err
		}
		runners = append(runners, rist)
	}
	return runners, nil
}

// printResults 以对齐表格输出各 Runner 的命中率。
func printResults(w io.Writer, cfg benchcfg.Config, results []workload.Result) {
	fmt.Fprintf(w, "capacity=%d operations=%d keyspace=%d read_ratio=%.2f zipf_s=%.2f seed=%d\n\n",
		cfg.Capacity, cfg.Operations, cfg.Keyspace, cfg.ReadRatio, cfg.ZipfS, cfg.Seed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUNNER\tHITS\tMISSES\tUPDATES\tHIT RATIO")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.4f\n",
			res.Name, res.Hits, res.Misses, res.Updates, res.HitRatio)
	}
	_ = tw.Flush()
}

// printForgetStats 输出 xforget 的内部淘汰统计。
func printForgetStats(w io.Writer, s xforget.Stats) {
	fmt.Fprintf(w, "\nxforget internals: evictions=%d fast_path=%d full_scans=%d\n",
		s.Evictions, s.FastPathEvictions, s.FullScans)
}

// cmdDemo 用一个容量 3 的映射演示两条淘汰路径。
func cmdDemo(w io.Writer) error {
	m, err := xforget.New[string, string](xforget.Config{Capacity: 3},
		func(k1 string, _ string, k2 string, _ string) int {
			return strings.Compare(k1, k2)
		},
		xforget.WithOnEvicted(func(key, value string) {
			fmt.Fprintf(w, "  evicted: %s=%s\n", key, value)
		}))
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "capacity 3, tie-break: lexical key order")
	fmt.Fprintln(w, "put alpha, beta, gamma; get gamma (drops the cached candidate)")
	m.Put("alpha", "1")
	m.Put("beta", "2")
	m.Put("gamma", "3")
	m.Get("gamma")

	fmt.Fprintln(w, "put delta -> full scan: alpha and beta tie at zero, lexical order picks alpha")
	m.Put("delta", "4")

	fmt.Fprintln(w, "put epsilon -> fast path: delta was never fetched")
	m.Put("epsilon", "5")

	s := m.Stats()
	fmt.Fprintf(w, "stats: evictions=%d fast_path=%d full_scans=%d\n",
		s.Evictions, s.FastPathEvictions, s.FullScans)
	return nil
}

// isCLIUsageError 判断是否为 CLI 框架产生的参数错误
// （未知 flag、未知命令等）。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "No help topic for") ||
		strings.Contains(msg, "unknown command")
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130) // 第二次信号: 强制退出
	}()
}
