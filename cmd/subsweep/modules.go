package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/vulnverified/subsweep/internal/output"
	"github.com/vulnverified/subsweep/internal/registry"
)

func newModulesCmd() *cobra.Command {
	var (
		jsonOutput bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List available modules and the API keys they need",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := os.LookupEnv("NO_COLOR"); ok {
				noColor = true
			}

			infos := registry.Global().Describe()
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}
			output.WriteModules(cmd.OutOrStdout(), infos, noColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the module list as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colors")

	return cmd
}
