package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
)

var updateCmd = &cobra.Command{
	Use:   "update [skill]...",
	Short: "Update installed skills",
	Long: `Fetch the latest version of installed skills and rewrite every recorded copy.

With no arguments every skill in the lockfile is updated. Skills whose content
hash is unchanged are skipped unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		outcomes, err := d.manager.Update(cmd.Context(), args, core.UpdateOptions{Force: force})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(outcomes) == 0 {
			fmt.Fprintln(out, "No skills installed.")
			return nil
		}
		for _, o := range outcomes {
			printOutcome(out, o)
		}
		return finish(out, "Updated", outcomes)
	},
}

func init() {
	updateCmd.Flags().BoolP("force", "f", false, "Rewrite skills even if unchanged")
	rootCmd.AddCommand(updateCmd)
}
