package cmd

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <skill>...",
	Aliases: []string{"uninstall"},
	Short:   "Remove installed skills",
	Long: `Remove skills from the selected platforms and location.

Only the selected targets are touched; copies installed elsewhere stay in
place and remain recorded in the lockfile. Skills that were copied in by hand
are removed from disk as well.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		outcomes, err := d.manager.Remove(cmd.Context(), args, scopeOptions(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, o := range outcomes {
			printOutcome(out, o)
		}
		return finish(out, "Removed", outcomes)
	},
}

func init() {
	addScopeFlags(removeCmd)
	rootCmd.AddCommand(removeCmd)
}
