package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "Show skills with available updates",
	Long: `Compare the version of each installed skill with the registry index.

Semantic versions are compared numerically; other version strings are
compared for equality. Skills no longer published are marked as removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")

		infos, err := d.manager.Outdated(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if infos == nil {
				infos = []core.UpdateInfo{}
			}
			return printJSON(out, infos)
		}
		if len(infos) == 0 {
			fmt.Fprintln(out, "No skills installed.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Skill\tInstalled\tAvailable")
		for _, u := range infos {
			available := "(up to date)"
			switch {
			case u.Removed:
				available = "(removed from registry)"
			case u.HasUpdate:
				available = u.Available
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.Name, u.Installed, available)
		}
		_ = w.Flush()
		return nil
	},
}

func init() {
	outdatedCmd.Flags().Bool("json", false, "Output as JSON for scripting")
	rootCmd.AddCommand(outdatedCmd)
}
