// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the classpath and
// classfile packages (class names, resource paths, filesystem paths). These
// are foundation types that carry semantic meaning and validation but have no
// domain-specific dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidClassName is the sentinel error wrapped by InvalidClassNameError.
var ErrInvalidClassName = errors.New("invalid class name")

type (
	// ClassName represents a fully qualified class name in binary form, with
	// segments separated by dots ("java.lang.String", "org.example.Outer$Inner").
	// The zero value ("") is invalid. Names never contain path separators;
	// converting to the resource layout used inside archives is ResourcePath's
	// job, via AsResourcePath.
	ClassName string

	// InvalidClassNameError is returned when a ClassName value is empty,
	// whitespace-only, contains path separators, or has empty dot segments.
	InvalidClassNameError struct {
		Value ClassName
	}
)

// String returns the string representation of the ClassName.
func (n ClassName) String() string { return string(n) }

// Validate returns an error if the ClassName is not a well-formed dotted
// binary name.
func (n ClassName) Validate() error {
	s := string(n)
	if strings.TrimSpace(s) == "" {
		return &InvalidClassNameError{Value: n}
	}
	if strings.ContainsAny(s, `/\`) {
		return &InvalidClassNameError{Value: n}
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return &InvalidClassNameError{Value: n}
		}
	}
	return nil
}

// AsResourcePath converts the dotted binary name to the slash-separated
// location of its compiled definition ("java.lang.String" becomes
// "java/lang/String.class"). Inner-class markers ('$') pass through unchanged.
func (n ClassName) AsResourcePath() ResourcePath {
	return ResourcePath(strings.ReplaceAll(string(n), ".", "/") + ".class")
}

// Error implements the error interface for InvalidClassNameError.
func (e *InvalidClassNameError) Error() string {
	return fmt.Sprintf("invalid class name %q: must be a non-empty dotted name without path separators", e.Value)
}

// Unwrap returns ErrInvalidClassName for errors.Is() compatibility.
func (e *InvalidClassNameError) Unwrap() error { return ErrInvalidClassName }
