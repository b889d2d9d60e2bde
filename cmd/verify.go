package cmd

import (
	"github.com/pterm/pterm"
	"github.com/routelab/routesim/state"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a simulation config without running it",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := state.LoadSimCfg(state.ConfigPath)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		pterm.Success.Printfln("%s is valid: %s over %d nodes, %d links",
			state.ConfigPath, cfg.Protocol, len(cfg.Nodes), len(cfg.Links))
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
