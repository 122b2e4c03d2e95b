// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/bytelens/bytelens/internal/config"
	"github.com/bytelens/bytelens/internal/issue"
	"github.com/bytelens/bytelens/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// classpathFlags collects repeatable --classpath entries
	classpathFlags []string
	// classpathFile names a TOML classpath manifest
	classpathFile string
)

// newRootCommand creates the bytelens root command and attaches all
// subcommands built from the App.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bytelens",
		Short: "Inspect compiled JVM classes across an ordered classpath",
		Long: TitleStyle.Render("bytelens") + SubtitleStyle.Render(" - Inspect compiled JVM classes across an ordered classpath") + `

bytelens resolves classes and resources the way a JVM class loader would,
without starting a JVM: an ordered list of jar/zip archives, aar archives,
and class directories is searched first-match-wins, backed by a built-in
base library of core Java definitions.

The classpath comes from --classpath flags, a TOML manifest
(--classpath-file), or the classpath list in the config file.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Point bytelens at your build output and dependencies
  2. Inspect what each entry contributes
  3. Resolve and dump the classes you care about

` + SubtitleStyle.Render("Examples:") + `
  bytelens inspect -c target/classes -c libs/core.jar
  bytelens resolve com/example/App.class
  bytelens dump com.example.App
  bytelens config show`,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/bytelens/config.cue)")
	rootCmd.PersistentFlags().StringArrayVarP(&classpathFlags, "classpath", "c", nil, "classpath entry (repeatable, accepts OS path-list syntax)")
	rootCmd.PersistentFlags().StringVar(&classpathFile, "classpath-file", "", "TOML manifest listing classpath entries")

	rootCmd.AddCommand(newInspectCommand(app))
	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newDumpCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display. Release
// builds carry ldflags values; go-install builds fall back to module build
// info; source builds report dev.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the App and the command tree, then runs the CLI.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	cobra.OnInitialize(initRootConfig)

	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(cfgFile),
	})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
