package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
)

var installCmd = &cobra.Command{
	Use:   "install <skill>...",
	Short: "Install skills from the registry",
	Long: `Install one or more skills into the skills directory of each selected platform.

By default skills are installed globally (under your home directory) for every
platform. Use --local to install into the current directory and --platforms to
pick specific platforms. Installing an unchanged skill again is a no-op; new
platforms are added without rewriting existing copies.`,
	Example: `  ai-skills install react-patterns
  ai-skills install go-testing --local --platforms claude,codex`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		outcomes, err := d.manager.Install(cmd.Context(), args, scopeOptions(cmd), core.InstallOptions{Force: force})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, o := range outcomes {
			printOutcome(out, o)
		}
		return finish(out, "Installed", outcomes)
	},
}

func init() {
	addScopeFlags(installCmd)
	installCmd.Flags().BoolP("force", "f", false, "Rewrite targets even if the skill is unchanged")
	rootCmd.AddCommand(installCmd)
}
