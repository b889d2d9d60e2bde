package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/routelab/routesim/core"
	"github.com/routelab/routesim/state"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long:  `Runs every router in the configured topology until the tick budget is spent, then validates the forwarding tables against ground truth shortest paths.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)

		level := slog.LevelInfo
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}

		res, err := core.Start(cfg, level)
		if err != nil {
			panic(err)
		}
		if !res.Report.Converged() {
			os.Exit(1)
		}
	},
}

func loadConfig(cmd *cobra.Command) *state.SimCfg {
	cfg, err := state.LoadSimCfg(state.ConfigPath)
	if err != nil {
		panic(err)
	}
	if p, _ := cmd.Flags().GetString("protocol"); p != "" {
		cfg.Protocol = state.Protocol(p)
	}
	if t, _ := cmd.Flags().GetUint64("ticks"); t != 0 {
		cfg.Ticks = t
	}
	if ok, _ := cmd.Flags().GetBool("parallel"); ok {
		cfg.Parallel = true
	}
	if err := state.SimConfigValidator(cfg); err != nil {
		panic(fmt.Errorf("invalid config after flags: %w", err))
	}
	return cfg
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.Flags().String("protocol", "", "override the configured protocol (dv or ls)")
	cmd.Flags().Uint64("ticks", 0, "override the configured tick budget")
	cmd.Flags().Bool("parallel", false, "tick routers concurrently within each tick")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSimFlags(runCmd)
}
