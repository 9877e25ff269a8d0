package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/core/system"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms",
	Long: `List the supported agent platforms, their skills directories and whether each tool was detected on this machine.

A platform is "active" when the current directory holds its configuration
files or a local skills directory.

Use --detected to list only the platforms installed on this machine.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver, err := core.NewResolver()
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		detectedOnly, _ := cmd.Flags().GetBool("detected")

		catalog := system.All()
		if detectedOnly {
			catalog = system.Detect()
		}
		localRoot := resolver.BaseRoot(core.LocationLocal)

		type platformInfo struct {
			Name        string   `json:"name"`
			Display     string   `json:"displayName"`
			Marker      string   `json:"marker"`
			GlobalDir   string   `json:"globalDir"`
			LocalDir    string   `json:"localDir"`
			Detected    bool     `json:"detected"`
			Active      bool     `json:"active"`
			DetectPaths []string `json:"detectPaths"`
		}
		var infos []platformInfo
		for _, s := range catalog {
			infos = append(infos, platformInfo{
				Name:        s.Name(),
				Display:     s.DisplayName(),
				Marker:      s.Marker(),
				GlobalDir:   s.SkillsDir(resolver.BaseRoot(core.LocationGlobal)),
				LocalDir:    s.SkillsDir(localRoot),
				Detected:    s.IsInstalled(),
				Active:      s.IsActiveInFolder(localRoot),
				DetectPaths: s.DetectPaths(),
			})
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, infos)
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Platform\tName\tGlobal directory\tDetected\tActive here")
		for _, p := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Display, p.GlobalDir, yesNo(p.Detected), yesNo(p.Active))
		}
		_ = w.Flush()
		return nil
	},
}

func init() {
	platformsCmd.Flags().Bool("json", false, "Output as JSON for scripting")
	platformsCmd.Flags().Bool("detected", false, "Only list platforms installed on this machine")
	rootCmd.AddCommand(platformsCmd)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
