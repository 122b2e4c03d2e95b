// SPDX-License-Identifier: MPL-2.0

// Package manifest loads classpath manifests: TOML files naming an ordered
// list of archives and directories. A manifest lets a build pin the exact
// classpath of an analysis run in a file instead of threading long flag
// lists through every invocation.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/bytelens/bytelens/pkg/fspath"
	"github.com/bytelens/bytelens/pkg/types"
)

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// Manifest is a named, ordered list of classpath entries loaded from a
	// TOML file.
	Manifest struct {
		// Name identifies the manifest in logs and diagnostics.
		Name string `toml:"name"`

		// Entries lists archives and directories in resolution order.
		// Relative entries are resolved against the manifest file's
		// directory, see ResolvedEntries.
		Entries []types.FilesystemPath `toml:"entries"`

		// FilePath is the path the manifest was loaded from. Stamped by
		// Parse; never serialized.
		FilePath types.FilesystemPath `toml:"-"`
	}

	// InvalidManifestError is returned when a Manifest has invalid fields.
	// It wraps ErrInvalidManifest for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidManifestError struct {
		FieldErrors []error
	}
)

// Error implements the error interface for InvalidManifestError.
func (e *InvalidManifestError) Error() string {
	if len(e.FieldErrors) == 1 {
		return "invalid manifest: " + e.FieldErrors[0].Error()
	}
	return fmt.Sprintf("invalid manifest: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidManifest for errors.Is() compatibility.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

// Parse reads and parses a classpath manifest from the given path.
func Parse(path types.FilesystemPath) (*Manifest, error) {
	pathStr := string(path)
	data, err := os.ReadFile(pathStr)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest at %s: %w", path, err)
	}

	return ParseBytes(data, pathStr)
}

// ParseBytes parses manifest content from bytes. Unknown keys are rejected
// so a typo in a manifest fails loudly instead of silently dropping entries.
func ParseBytes(data []byte, path string) (*Manifest, error) {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest at %s: %w", path, err)
	}

	m.FilePath = types.FilesystemPath(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks every entry path. It collects field errors rather than
// stopping at the first one. An empty entry list is valid; a blank entry
// is not.
func (m *Manifest) Validate() error {
	var errs []error
	for _, p := range m.Entries {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &InvalidManifestError{FieldErrors: errs}
	}
	return nil
}

// ResolvedEntries returns the entries with relative paths resolved against
// the manifest file's directory, so a manifest next to its build output
// works regardless of the process working directory. Absolute entries pass
// through unchanged.
func (m *Manifest) ResolvedEntries() []types.FilesystemPath {
	if len(m.Entries) == 0 {
		return nil
	}
	base := fspath.Dir(m.FilePath)
	resolved := make([]types.FilesystemPath, 0, len(m.Entries))
	for _, entry := range m.Entries {
		p := fspath.FromSlash(entry)
		if !fspath.IsAbs(p) {
			p = fspath.JoinStr(base, string(p))
		}
		resolved = append(resolved, p)
	}
	return resolved
}
