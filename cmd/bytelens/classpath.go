// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bytelens/bytelens/internal/config"
	"github.com/bytelens/bytelens/internal/issue"
	"github.com/bytelens/bytelens/pkg/classpath"
	"github.com/bytelens/bytelens/pkg/manifest"
	"github.com/bytelens/bytelens/pkg/types"
)

// newLoader builds a classpath loader for a command invocation: it loads
// configuration, assembles the entry list, and wires a logger at the
// configured level. The caller owns the loader and must Close it.
func newLoader(ctx context.Context, app *App) (*classpath.Loader, error) {
	cfg, diags := loadConfigWithFallback(ctx, app.Config, cfgFile)
	app.Diagnostics.Render(ctx, diags, app.stderr)
	for _, diag := range diags {
		if diag.Severity == SeverityError {
			return nil, &ExitError{Code: 1, Err: diag.Cause}
		}
	}

	paths, err := assembleClasspath(cfg)
	if err != nil {
		return nil, err
	}

	return classpath.New(paths, classpath.WithLogger(newLoaderLogger(cfg.LogLevel))), nil
}

// assembleClasspath resolves the effective entry list for this invocation.
// Exactly one source is used, in precedence order: --classpath flags, then
// the --classpath-file manifest, then the config file's classpath. Sources
// are never concatenated; the first non-empty one wins.
func assembleClasspath(cfg *config.Config) ([]types.FilesystemPath, error) {
	if len(classpathFlags) > 0 {
		return splitClasspathFlags(classpathFlags), nil
	}

	if classpathFile != "" {
		m, err := manifest.Parse(types.FilesystemPath(classpathFile))
		if err != nil {
			id := issue.ManifestParseErrorId
			if errors.Is(err, os.ErrNotExist) {
				id = issue.ManifestNotFoundId
			}
			return nil, newServiceError(err, id, RenderManifestError(classpathFile, err))
		}
		return m.ResolvedEntries(), nil
	}

	return cfg.Classpath, nil
}

// splitClasspathFlags expands repeated --classpath values, each of which may
// itself be an OS path list ("app.jar:libs/core.jar" on Unix), into the flat
// entry list. Blank segments are dropped.
func splitClasspathFlags(flags []string) []types.FilesystemPath {
	var entries []types.FilesystemPath
	for _, flag := range flags {
		for _, segment := range filepath.SplitList(flag) {
			if segment == "" {
				continue
			}
			entries = append(entries, types.FilesystemPath(segment))
		}
	}
	return entries
}

// newLoaderLogger builds the loader's logger honoring the configured level.
// --verbose forces debug so per-entry diagnostics always show.
func newLoaderLogger(level config.LogLevel) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "classpath"})
	switch {
	case verbose, level == config.LogLevelDebug:
		logger.SetLevel(log.DebugLevel)
	case level == config.LogLevelInfo:
		logger.SetLevel(log.InfoLevel)
	case level == config.LogLevelError:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
