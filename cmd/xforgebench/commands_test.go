package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/omeyang/xforget/internal/benchcfg"
	"github.com/omeyang/xforget/internal/workload"
)

func TestUsageError(t *testing.T) {
	err := &usageError{msg: "bad flag"}
	if err.Error() != "bad flag" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "bad flag")
	}

	var ue *usageError
	if !errors.As(error(err), &ue) {
		t.Fatal("errors.As should match *usageError")
	}
}

func TestIsCLIUsageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"undefined_flag", errors.New("flag provided but not defined: -bogus"), true},
		{"no_help_topic", errors.New("No help topic for 'bogus'"), true},
		{"unknown_command", errors.New("unknown command: bogus"), true},
		{"runtime_error", errors.New("replay trace: context canceled"), false},
		{"config_error", benchcfg.ErrInvalidConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCLIUsageError(tt.err); got != tt.want {
				t.Fatalf("isCLIUsageError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCreateApp(t *testing.T) {
	app := createApp()
	if app.Name != "xforgebench" {
		t.Fatalf("app.Name = %q, want %q", app.Name, "xforgebench")
	}

	names := make(map[string]bool)
	for _, c := range app.Commands {
		names[c.Name] = true
	}
	for _, want := range []string{"run", "demo"} {
		if !names[want] {
			t.Fatalf("missing %q command, have %v", want, names)
		}
	}
}

func TestCmdRun_SmallTrace(t *testing.T) {
	cfg := benchcfg.Default()
	cfg.Capacity = 16
	cfg.Operations = 500
	cfg.Keyspace = 64
	cfg.Seed = 7

	if err := cmdRun(context.Background(), cfg); err != nil {
		t.Fatalf("cmdRun: %v", err)
	}
}

func TestCmdRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := benchcfg.Default()
	cfg.Operations = 100_000

	err := cmdRun(ctx, cfg)
	if err == nil {
		t.Fatal("cmdRun with cancelled context should fail")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestCmdDemo(t *testing.T) {
	var buf bytes.Buffer
	if err := cmdDemo(&buf); err != nil {
		t.Fatalf("cmdDemo: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"evicted: alpha=1",
		"evicted: delta=4",
		"evictions=2 fast_path=1 full_scans=1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildRunners(t *testing.T) {
	cfg := benchcfg.Default()
	cfg.Capacity = 8

	runners, err := buildRunners(cfg)
	if err != nil {
		t.Fatalf("buildRunners: %v", err)
	}
	defer func() {
		for _, r := range runners {
			_ = r.Close()
		}
	}()

	if len(runners) != 3 {
		t.Fatalf("len(runners) = %d, want 3", len(runners))
	}
	if _, ok := runners[0].(workload.StatsReporter); !ok {
		t.Fatal("first runner should expose internal stats")
	}

	cfg.Baselines.LRU = false
	cfg.Baselines.Ristretto = false
	only, err := buildRunners(cfg)
	if err != nil {
		t.Fatalf("buildRunners without baselines: %v", err)
	}
	defer func() {
		for _, r := range only {
			_ = r.Close()
		}
	}()
	if len(only) != 1 || only[0].Name() != "xforget" {
		t.Fatalf("runners = %v, want only xforget", only)
	}
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	cfg := benchcfg.Default()
	printResults(&buf, cfg, []workload.Result{
		{Name: "xforget", Hits: 90, Misses: 10, Updates: 20, HitRatio: 0.9},
		{Name: "lru", Hits: 80, Misses: 20, Updates: 20, HitRatio: 0.8},
	})

	out := buf.String()
	if !strings.Contains(out, "RUNNER") || !strings.Contains(out, "0.9000") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}
