package core

import (
	"log/slog"
	"os"
	"path"

	"github.com/encodeous/tint"
	"github.com/routelab/routesim/state"
	slogmulti "github.com/samber/slog-multi"
)

// BuildLogger assembles the simulation logger: a tinted handler on
// stderr, fanned out to a plain text file when logPath is set.
func BuildLogger(level slog.Level, logPath string, prefix string) (*slog.Logger, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        level,
			AddSource:    false,
			CustomPrefix: prefix,
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))

	if logPath != "" {
		err := os.MkdirAll(path.Dir(logPath), 0700)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0700)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// RunResult is what a finished simulation hands back to the CLI.
type RunResult struct {
	Ticks  uint64
	Tables map[state.NodeId]state.ForwardingTable
	Report Report
}

// Start runs one simulation end to end: build the routers, tick for
// the configured budget, and validate the forwarding tables against
// ground truth.
func Start(cfg *state.SimCfg, level slog.Level) (*RunResult, error) {
	log, err := BuildLogger(level, cfg.LogPath, string(cfg.Protocol))
	if err != nil {
		return nil, err
	}

	sim, err := NewSimulator(cfg, log)
	if err != nil {
		return nil, err
	}

	ticks := cfg.RunTicks()
	log.Info("starting simulation",
		"protocol", cfg.Protocol,
		"nodes", len(cfg.Nodes),
		"links", len(cfg.Links),
		"ticks", ticks)
	sim.Run()

	tables := sim.ForwardingTables()
	report := Validate(&cfg.TopologyCfg, tables)
	if report.Converged() {
		log.Info("network converged", "ticks", ticks)
	} else {
		log.Warn("network did not converge", "problems", len(report.Problems))
		for _, p := range report.Problems {
			log.Warn("convergence problem", "detail", p)
		}
	}

	return &RunResult{
		Ticks:  ticks,
		Tables: tables,
		Report: report,
	}, nil
}
