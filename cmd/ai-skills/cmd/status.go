package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare installed skills with the lockfile",
	Long: `Check every recorded install path against the disk.

  ok         the file exists and matches the recorded hash
  modified   the file was edited after install
  missing    the file was deleted
  untracked  a skill found in a skills directory but not in the lockfile

Exits with status 1 when anything has drifted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")

		report, err := d.manager.Status()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if report == nil {
				report = []core.PathStatus{}
			}
			return printJSON(out, report)
		}
		if len(report) == 0 {
			fmt.Fprintln(out, "No skills installed.")
			return nil
		}

		drifted := 0
		current := ""
		for _, r := range report {
			if r.Skill != current {
				current = r.Skill
				fmt.Fprintln(out, tui.TitleStyle.Render(r.Skill))
			}
			line := fmt.Sprintf("%-9s %-8s %s", r.State, r.Platform, r.Path)
			switch r.State {
			case core.DriftOK:
				fmt.Fprintf(out, "    %s\n", tui.Success(line))
			case core.DriftUntracked:
				drifted++
				fmt.Fprintf(out, "    %s\n", tui.Skipped(line))
			default:
				drifted++
				fmt.Fprintf(out, "    %s\n", tui.Warning(line))
			}
		}

		if drifted > 0 {
			return fmt.Errorf("%d path(s) drifted from the lockfile", drifted)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Output as JSON for scripting")
	rootCmd.AddCommand(statusCmd)
}
