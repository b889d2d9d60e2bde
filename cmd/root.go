package cmd

import (
	"os"

	"github.com/routelab/routesim/state"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "routesim",
	Short: "Discrete-tick routing protocol simulator",
	Long: `Routesim simulates the convergence of classical intra-domain routing
protocols. Every router is an independent agent exchanging advertisements with
its direct neighbours once per tick: distance vector routers relax their
vectors incrementally, link state routers flood their link tables and run a
single shortest path computation. The resulting forwarding tables are checked
against ground truth shortest paths.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&state.ConfigPath, "config", "c", state.ConfigPath, "simulation config file")
}
