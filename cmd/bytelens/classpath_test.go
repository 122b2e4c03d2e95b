// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bytelens/bytelens/internal/config"
	"github.com/bytelens/bytelens/internal/issue"
	"github.com/bytelens/bytelens/pkg/types"
)

// setClasspathSources mutates the package-level flag vars for one test and
// restores them on cleanup.
func setClasspathSources(t *testing.T, flags []string, file string) {
	t.Helper()
	origFlags, origFile := classpathFlags, classpathFile
	t.Cleanup(func() {
		classpathFlags, classpathFile = origFlags, origFile
	})
	classpathFlags, classpathFile = flags, file
}

func TestAssembleClasspath(t *testing.T) {
	// Not parallel: subtests mutate package-level classpath flag vars.

	cfg := &config.Config{
		Classpath: []types.FilesystemPath{"/opt/config/app.jar"},
		LogLevel:  config.LogLevelWarn,
	}

	t.Run("classpath flags win over every other source", func(t *testing.T) {
		setClasspathSources(t, []string{"target/classes", "libs/core.jar"}, "ignored.toml")

		got, err := assembleClasspath(cfg)
		if err != nil {
			t.Fatalf("assembleClasspath() error = %v", err)
		}
		want := []types.FilesystemPath{"target/classes", "libs/core.jar"}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("manifest is used when no flags are set", func(t *testing.T) {
		dir := t.TempDir()
		manifestPath := filepath.Join(dir, "bytelens.toml")
		content := `name = "test"
entries = ["target/classes"]
`
		if err := os.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		setClasspathSources(t, nil, manifestPath)

		got, err := assembleClasspath(cfg)
		if err != nil {
			t.Fatalf("assembleClasspath() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if want := types.FilesystemPath(filepath.Join(dir, "target", "classes")); got[0] != want {
			t.Errorf("got[0] = %q, want %q", got[0], want)
		}
	})

	t.Run("missing manifest maps to the not-found issue", func(t *testing.T) {
		setClasspathSources(t, nil, filepath.Join(t.TempDir(), "absent.toml"))

		_, err := assembleClasspath(cfg)
		if err == nil {
			t.Fatal("assembleClasspath() expected error for missing manifest")
		}

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			t.Fatalf("error = %T, want *ServiceError", err)
		}
		if svcErr.IssueID != issue.ManifestNotFoundId {
			t.Errorf("IssueID = %d, want ManifestNotFoundId", svcErr.IssueID)
		}
		if svcErr.StyledMessage == "" {
			t.Error("expected a styled manifest card")
		}
	})

	t.Run("malformed manifest maps to the parse issue", func(t *testing.T) {
		dir := t.TempDir()
		manifestPath := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(manifestPath, []byte("entries = [\n"), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		setClasspathSources(t, nil, manifestPath)

		_, err := assembleClasspath(cfg)
		if err == nil {
			t.Fatal("assembleClasspath() expected error for malformed manifest")
		}

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			t.Fatalf("error = %T, want *ServiceError", err)
		}
		if svcErr.IssueID != issue.ManifestParseErrorId {
			t.Errorf("IssueID = %d, want ManifestParseErrorId", svcErr.IssueID)
		}
	})

	t.Run("config classpath is the final fallback", func(t *testing.T) {
		setClasspathSources(t, nil, "")

		got, err := assembleClasspath(cfg)
		if err != nil {
			t.Fatalf("assembleClasspath() error = %v", err)
		}
		if len(got) != 1 || got[0] != "/opt/config/app.jar" {
			t.Errorf("got = %v, want the config classpath", got)
		}
	})
}

func TestSplitClasspathFlags(t *testing.T) {
	t.Parallel()

	sep := string(filepath.ListSeparator)

	tests := []struct {
		name  string
		flags []string
		want  []types.FilesystemPath
	}{
		{
			name:  "single entry",
			flags: []string{"target/classes"},
			want:  []types.FilesystemPath{"target/classes"},
		},
		{
			name:  "repeated flags keep order",
			flags: []string{"a.jar", "b.jar"},
			want:  []types.FilesystemPath{"a.jar", "b.jar"},
		},
		{
			name:  "path list syntax is expanded",
			flags: []string{"a.jar" + sep + "libs/b.jar", "c"},
			want:  []types.FilesystemPath{"a.jar", "libs/b.jar", "c"},
		},
		{
			name:  "blank segments are dropped",
			flags: []string{sep + "a.jar" + sep},
			want:  []types.FilesystemPath{"a.jar"},
		},
		{
			name:  "no flags yields nil",
			flags: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitClasspathFlags(tt.flags)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (got %v)", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewLoaderLogger(t *testing.T) {
	// Not parallel: newLoaderLogger reads the package-level verbose var.

	origVerbose := verbose
	t.Cleanup(func() { verbose = origVerbose })

	tests := []struct {
		name    string
		verbose bool
		level   config.LogLevel
		want    log.Level
	}{
		{name: "debug level", level: config.LogLevelDebug, want: log.DebugLevel},
		{name: "info level", level: config.LogLevelInfo, want: log.InfoLevel},
		{name: "warn level", level: config.LogLevelWarn, want: log.WarnLevel},
		{name: "error level", level: config.LogLevelError, want: log.ErrorLevel},
		{name: "verbose forces debug", verbose: true, level: config.LogLevelError, want: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbose = tt.verbose

			logger := newLoaderLogger(tt.level)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoaderUsesErrorDiagnosticAsAbort(t *testing.T) {
	// Not parallel: depends on package-level cfgFile/classpath vars.

	origCfgFile := cfgFile
	t.Cleanup(func() { cfgFile = origCfgFile })
	setClasspathSources(t, nil, "")
	cfgFile = filepath.Join(t.TempDir(), "absent.cue")

	var stderr strings.Builder
	app, err := NewApp(Dependencies{
		Config: &stubConfigProvider{err: errors.New("config file not found")},
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	_, err = newLoader(t.Context(), app)
	if err == nil {
		t.Fatal("newLoader() expected error for explicit config failure")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
	if stderr.Len() == 0 {
		t.Error("expected the diagnostic to be rendered to stderr")
	}
}

func TestNewLoaderFallsBackOnMissingDefaultConfig(t *testing.T) {
	// Not parallel: depends on package-level cfgFile/classpath vars.

	origCfgFile := cfgFile
	t.Cleanup(func() { cfgFile = origCfgFile })
	setClasspathSources(t, []string{"target/classes"}, "")
	cfgFile = ""

	var stderr strings.Builder
	app, err := NewApp(Dependencies{
		Config: &stubConfigProvider{err: os.ErrNotExist},
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	loader, err := newLoader(t.Context(), app)
	if err != nil {
		t.Fatalf("newLoader() error = %v", err)
	}
	defer loader.Close()

	entries := loader.Entries()
	if len(entries) != 1 || entries[0].Path != "target/classes" {
		t.Errorf("entries = %v, want the flag entry", entries)
	}
	if !strings.Contains(stderr.String(), "warning") {
		t.Errorf("stderr = %q, want a rendered warning", stderr.String())
	}
}
