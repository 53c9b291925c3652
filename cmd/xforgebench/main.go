// xforgebench 是 xforget LFU 映射的工作负载对比工具。
//
// 用法:
//
//	xforgebench [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-v, --verbose  输出调试日志
//
// 命令:
//
//	run            生成 Zipf 访问轨迹，在 xforget 与基线缓存
//	               （simplelru LRU、ristretto TinyLFU）上回放并对比命中率
//	demo           演示 forgetting map 的淘汰行为（快速路径 vs 全量扫描）
//	help           显示帮助信息
//
// run 命令说明:
//
//	参数来源优先级：命令行 flag > 配置文件 > 内置默认值。
//	配置文件按扩展名识别 YAML/JSON，见 internal/benchcfg 的示例。
//	每次运行以 uuid 标记 run_id，轨迹由固定种子生成，结果可复现。
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败
//	2: 参数错误（无效 flag、未知命令、非法配置等）
//
// 示例:
//
//	xforgebench run                                # 内置默认参数
//	xforgebench run --config bench.yaml            # 从配置文件加载
//	xforgebench run --capacity 256 --seed 7        # flag 覆盖
//	xforgebench run --no-ristretto                 # 关闭某个基线
//	xforgebench demo                               # 淘汰行为演示
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xforgebench",
		Usage:   "xforget LFU 映射的工作负载对比工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "输出调试日志",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"XForget Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Before: func(_ context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogger(cmd.Bool("verbose"))
			return nil, nil
		},
	}
}

// setupLogger 配置全局 slog：文本格式输出到 stderr，
// --verbose 时启用 Debug 级别。
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
