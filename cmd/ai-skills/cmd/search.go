package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/tui"
)

var searchCmd = &cobra.Command{
	Use:   "search [pattern]",
	Short: "Search the registry for skills",
	Long: `List skills published in the registry.

The pattern matches skill names. It may be a glob (react-*, *test*) or a plain
substring. --domain filters by domain the same way.`,
	Example: `  ai-skills search
  ai-skills search react
  ai-skills search --domain 'front*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		var pattern string
		if len(args) > 0 {
			pattern = args[0]
		}
		domain, _ := cmd.Flags().GetString("domain")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		idx, err := d.registry.FetchIndex(cmd.Context())
		if err != nil {
			return err
		}
		names, err := idx.Filter(pattern, domain)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			type result struct {
				Name    string   `json:"name"`
				Version string   `json:"version"`
				Domains []string `json:"domains"`
			}
			results := make([]result, 0, len(names))
			for _, n := range names {
				e, _ := idx.Lookup(n)
				results = append(results, result{Name: n, Version: e.Version, Domains: e.Domains})
			}
			return printJSON(out, results)
		}
		if len(names) == 0 {
			fmt.Fprintln(out, "No matching skills.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Skill\tVersion\tDomains")
		for _, n := range names {
			e, _ := idx.Lookup(n)
			fmt.Fprintf(w, "%s\t%s\t%s\n", tui.Truncate(n, 40), e.Version, tui.Truncate(joinStrings(e.Domains), 50))
		}
		_ = w.Flush()
		return nil
	},
}

func init() {
	searchCmd.Flags().String("domain", "", "Only show skills with a matching domain")
	searchCmd.Flags().Bool("json", false, "Output as JSON for scripting")
	rootCmd.AddCommand(searchCmd)
}
