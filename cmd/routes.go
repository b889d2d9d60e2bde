package cmd

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/pterm/pterm"
	"github.com/routelab/routesim/core"
	"github.com/spf13/cobra"
)

// routesCmd runs a simulation and renders every forwarding table
var routesCmd = &cobra.Command{
	Use:     "routes",
	Aliases: []string{"r"},
	Short:   "Run a simulation and print the forwarding tables",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)

		level := slog.LevelWarn
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}

		res, err := core.Start(cfg, level)
		if err != nil {
			panic(err)
		}

		td := pterm.TableData{{"Node", "Destination", "Next hop"}}
		for _, node := range slices.Sorted(maps.Keys(res.Tables)) {
			table := res.Tables[node]
			for _, dst := range slices.Sorted(maps.Keys(table)) {
				if dst == node {
					continue
				}
				td = append(td, []string{string(node), string(dst), string(table[dst])})
			}
		}
		err = pterm.DefaultTable.WithHasHeader().WithData(td).Render()
		if err != nil {
			panic(err)
		}

		if res.Report.Converged() {
			pterm.Success.Printfln("converged after %d ticks", res.Ticks)
		} else {
			pterm.Error.Printfln("did not converge within %d ticks", res.Ticks)
			for _, p := range res.Report.Problems {
				pterm.Error.Println(p)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	addSimFlags(routesCmd)
}
