package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ai-open-source/ai-skills/internal/config"
	"github.com/ai-open-source/ai-skills/internal/core"
	"github.com/ai-open-source/ai-skills/internal/logger"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Loaded by PersistentPreRunE before any command runs.
var (
	settings config.Config
	v        *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "ai-skills",
	Short: "Install and manage AI agent skills across platforms",
	Long: `ai-skills installs versioned skill documents from a registry into the
configuration directories of AI agent tools (Claude, Gemini, VS Code,
OpenCode, Codex and the shared .agents directory).

Installs are tracked in ~/.ai-skills/.skill-lock.json so updates and
removals only touch what was installed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ai-skills %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("registry", "", "Registry URL or directory (default: $AI_SKILLS_REGISTRY_URL or the public registry)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: fmt or json")
	pf.String("config", "", "Config file (default: ~/.ai-skills/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective configuration from defaults, config file,
// environment and flags, then applies the logging settings.
func loadConfig(cmd *cobra.Command) error {
	home, err := core.NewHome()
	if err != nil {
		return err
	}
	configFile, _ := cmd.Flags().GetString("config")

	v, err = config.New(home.Dir(), configFile)
	if err != nil {
		return err
	}

	flags := map[string]string{
		config.KeyRegistryURL: "registry",
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
	}
	for key, name := range flags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	settings, err = config.Load(v)
	if err != nil {
		return err
	}
	if err := logger.SetLogLevel(settings.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	logger.SetLogFormat(settings.LogFormat)
	return nil
}

// Execute runs the root command. Interrupts cancel in-flight registry requests.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && core.IsConfigurationError(err) {
		return fmt.Errorf("%w\nRun 'ai-skills --help' for usage", err)
	}
	return err
}
