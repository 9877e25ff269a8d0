package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed skills",
	Long:    `List the skills recorded in ~/.ai-skills/.skill-lock.json with their version and install locations.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		showPaths, _ := cmd.Flags().GetBool("paths")

		entries, err := d.manager.List()
		if err != nil {
			return fmt.Errorf("reading lockfile: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if entries == nil {
				entries = []core.LockfileEntry{}
			}
			return printJSON(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No skills installed.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Skill\tVersion\tHash\tInstalled\tPlatforms")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				tui.Truncate(e.Name, 32),
				e.Version,
				shortHash(e.Hash),
				e.Timestamp.Local().Format(time.DateTime),
				tui.Truncate(joinStrings(entryPlatforms(e)), 48),
			)
		}
		_ = w.Flush()

		if showPaths {
			for _, e := range entries {
				fmt.Fprintf(out, "\n%s:\n", e.Name)
				for _, p := range e.InstallPaths {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
		}
		return nil
	},
}

// entryPlatforms names the platforms an entry is installed for, in path order.
func entryPlatforms(e core.LockfileEntry) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range e.InstallPaths {
		name := core.TargetFromPath(p).PlatformName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func init() {
	listCmd.Flags().Bool("json", false, "Output as JSON for scripting")
	listCmd.Flags().Bool("paths", false, "Show every install path")
	rootCmd.AddCommand(listCmd)
}
