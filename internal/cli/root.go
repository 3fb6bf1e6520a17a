package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/richapps/ngtron/internal/branding"
	"github.com/richapps/ngtron/internal/config"
	"github.com/richapps/ngtron/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` adds Electron desktop packaging to an Angular workspace project:
serve/build targets in angular.json, an electron.main.js bootstrap file, and the
electron dev dependencies in package.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		settings := config.Current()

		level, err := logging.ParseLevel(settings.LogLevel)
		if err != nil {
			return fmt.Errorf("config %s: %w", config.KeyLogLevel, err)
		}
		logging.Init(level, settings.LogFormat, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// Run executes the command tree with explicit arguments and writers. Flags
// are reset to their defaults first so repeated calls do not leak state.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
