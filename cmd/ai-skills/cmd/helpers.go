package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/core/system"
	"github.com/ai-open-source/ai-skills/internal/logger"
	"github.com/ai-open-source/ai-skills/internal/tui"
)

// addScopeFlags adds the location and platform selection flags to a command.
func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("local", "l", false, "Use the current directory as base root")
	cmd.Flags().BoolP("global", "g", false, "Use the home directory as base root (default)")
	cmd.Flags().BoolP("all", "a", false, "Select every platform (default when --platforms is not given)")
	cmd.Flags().StringSliceP("platforms", "p", nil,
		"Comma-separated platforms ("+strings.Join(system.Names(system.All()), ", ")+")")
}

// scopeOptions reads the scope flags added by addScopeFlags.
func scopeOptions(cmd *cobra.Command) core.ScopeOptions {
	local, _ := cmd.Flags().GetBool("local")
	global, _ := cmd.Flags().GetBool("global")
	all, _ := cmd.Flags().GetBool("all")
	platforms, _ := cmd.Flags().GetStringSlice("platforms")
	return core.ScopeOptions{
		Local:     local,
		Global:    global,
		All:       all,
		Platforms: platforms,
	}
}

// printOutcome writes one skill's result followed by its per-target lines.
func printOutcome(w io.Writer, o core.SkillOutcome) {
	name := tui.TitleStyle.Render(o.Name)
	switch o.Status {
	case core.StatusInstalled, core.StatusUpdated, core.StatusRemoved:
		fmt.Fprintln(w, tui.Success(fmt.Sprintf("%s %s%s", name, o.Status, versionSuffix(o.Version))))
	case core.StatusUpToDate:
		fmt.Fprintln(w, tui.Skipped(fmt.Sprintf("%s is up to date%s", name, versionSuffix(o.Version))))
	case core.StatusNotInstalled:
		if o.Err != nil {
			fmt.Fprintln(w, tui.Failure(fmt.Sprintf("%s: %v", o.Name, o.Err)))
		} else {
			fmt.Fprintln(w, tui.Skipped(fmt.Sprintf("%s is not installed", name)))
		}
	default:
		fmt.Fprintln(w, tui.Failure(fmt.Sprintf("%s failed", o.Name)))
	}

	for _, r := range o.Results {
		platform := r.Target.PlatformName()
		if r.OK() {
			fmt.Fprintf(w, "    %s %-8s %s\n", tui.SuccessStyle.Render(tui.MarkSuccess), platform, tui.MutedStyle.Render(r.Path))
			continue
		}
		fmt.Fprintf(w, "    %s\n", tui.Warning(fmt.Sprintf("%-8s %v", platform, targetCause(r.Err))))
	}
	if o.Status == core.StatusFailed && o.Err != nil && len(o.Results) == 0 {
		fmt.Fprintf(w, "    %s\n", tui.ErrorStyle.Render(o.Err.Error()))
	}
}

// targetCause strips the TargetError prefix, which repeats the platform.
func targetCause(err error) error {
	if te, ok := err.(*core.TargetError); ok {
		return te.Err
	}
	return err
}

func versionSuffix(version string) string {
	if version == "" || version == core.UnknownVersion {
		return ""
	}
	return " (" + version + ")"
}

// finish prints a summary line and returns an error when any skill failed,
// so the process exits non-zero.
func finish(w io.Writer, verb string, outcomes []core.SkillOutcome) error {
	var ok, failed int
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case o.Status == core.StatusInstalled, o.Status == core.StatusUpdated, o.Status == core.StatusRemoved:
			ok++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d skill(s), %d failed.\n", verb, ok, failed)
	if err := core.Failures(outcomes); err != nil {
		logger.L.WithError(err).Debug("skill operations failed")
		return fmt.Errorf("%d of %d skill(s) failed", failed, len(outcomes))
	}
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// joinStrings concatenates string slices with ", " separator.
func joinStrings(ss []string) string {
	return strings.Join(ss, ", ")
}

// shortHash returns the first 12 characters of a content hash.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
