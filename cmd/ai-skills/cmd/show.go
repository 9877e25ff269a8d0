package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show <skill>",
	Short: "Show a skill document from the registry",
	Long:  `Fetch a skill's SKILLS.md from the registry and render it in the terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")

		content, err := d.registry.FetchSkill(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if raw {
			_, err := out.Write(content)
			return err
		}
		fm, body, err := core.ParseFrontmatter(content)
		if err != nil {
			body = content
		}
		if fm.Version != "" {
			fmt.Fprintln(out, tui.TitleStyle.Render(args[0])+" "+tui.MutedStyle.Render(fm.Version))
		}
		if len(fm.Domains) > 0 {
			fmt.Fprintln(out, tui.MutedStyle.Render("domains: "+joinStrings(fm.Domains)))
		}
		fmt.Fprint(out, tui.RenderMarkdown(string(body), terminalWidth()))
		return nil
	},
}

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return tui.DefaultWidth
	}
	return w
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the document without rendering")
	rootCmd.AddCommand(showCmd)
}
