// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResourcePath is the sentinel error wrapped by InvalidResourcePathError.
var ErrInvalidResourcePath = errors.New("invalid resource path")

type (
	// ResourcePath represents the location of a resource inside a classpath
	// entry, always slash-separated and relative ("org/example/Foo.class",
	// "META-INF/MANIFEST.MF") regardless of the host OS. The zero value ("")
	// is invalid.
	ResourcePath string

	// InvalidResourcePathError is returned when a ResourcePath value is
	// empty, whitespace-only, absolute, or uses backslash separators.
	InvalidResourcePathError struct {
		Value ResourcePath
	}
)

// String returns the string representation of the ResourcePath.
func (p ResourcePath) String() string { return string(p) }

// Validate returns an error if the ResourcePath is not a well-formed
// slash-separated relative path.
func (p ResourcePath) Validate() error {
	s := string(p)
	if strings.TrimSpace(s) == "" {
		return &InvalidResourcePathError{Value: p}
	}
	if strings.HasPrefix(s, "/") || strings.Contains(s, `\`) {
		return &InvalidResourcePathError{Value: p}
	}
	return nil
}

// IsClassFile reports whether the path names a compiled class definition.
func (p ResourcePath) IsClassFile() bool {
	return strings.HasSuffix(string(p), ".class")
}

// Error implements the error interface for InvalidResourcePathError.
func (e *InvalidResourcePathError) Error() string {
	return fmt.Sprintf("invalid resource path %q: must be a non-empty slash-separated relative path", e.Value)
}

// Unwrap returns ErrInvalidResourcePath for errors.Is() compatibility.
func (e *InvalidResourcePathError) Unwrap() error { return ErrInvalidResourcePath }
