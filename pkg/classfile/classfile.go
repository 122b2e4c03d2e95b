// SPDX-License-Identifier: MPL-2.0

// Package classfile reads and writes the envelope of compiled JVM class
// definitions: the magic number, the format version, and the leading
// constant-pool section far enough to recover the class name, super class
// name, and access flags. It deliberately stops there.
//
// Nothing in this package links, verifies, or executes bytecode. Full
// instruction and constant-pool modelling is the consumer's job; this
// package exists so the classpath loader can validate what it hands out
// and so tooling can print identity facts about a class without a JVM.
package classfile

import (
	"errors"
	"fmt"

	"github.com/bytelens/bytelens/pkg/types"
)

// Magic is the four-byte signature that opens every class file.
const Magic uint32 = 0xCAFEBABE

// ErrNotClassFile is returned when data does not start with the class file magic.
var ErrNotClassFile = errors.New("not a class file")

// ErrTruncatedClassFile is returned when data ends before a structurally
// required field.
var ErrTruncatedClassFile = errors.New("truncated class file")

// ErrMalformedClassFile is returned when the constant pool or header fields
// are structurally inconsistent.
var ErrMalformedClassFile = errors.New("malformed class file")

// Version is the class file format version pair. The major number maps to a
// Java release: major 45 is Java 1.1, major 52 is Java 8, major 55 is Java 11.
type Version struct {
	Minor uint16
	Major uint16
}

// Release returns the Java release number corresponding to the major version
// (major 55 yields 11). Results below 1 indicate a pre-release-numbering
// class file.
func (v Version) Release() int { return int(v.Major) - 44 }

// String returns the "major.minor" form used by javap.
func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// AccessFlags is the class-level access and property mask.
type AccessFlags uint16

// Class-level access flag bits.
const (
	AccPublic     AccessFlags = 0x0001
	AccFinal      AccessFlags = 0x0010
	AccSuper      AccessFlags = 0x0020
	AccInterface  AccessFlags = 0x0200
	AccAbstract   AccessFlags = 0x0400
	AccSynthetic  AccessFlags = 0x1000
	AccAnnotation AccessFlags = 0x2000
	AccEnum       AccessFlags = 0x4000
	AccModule     AccessFlags = 0x8000
)

// Has reports whether all bits of flag are set.
func (f AccessFlags) Has(flag AccessFlags) bool { return f&flag == flag }

// String renders the set flags in javap order ("public final class").
func (f AccessFlags) String() string {
	names := []struct {
		bit  AccessFlags
		name string
	}{
		{AccPublic, "public"},
		{AccFinal, "final"},
		{AccAbstract, "abstract"},
		{AccInterface, "interface"},
		{AccAnnotation, "annotation"},
		{AccEnum, "enum"},
		{AccSynthetic, "synthetic"},
		{AccModule, "module"},
	}
	out := ""
	for _, n := range names {
		if !f.Has(n.bit) {
			continue
		}
		if out != "" {
			out += " "
		}
		out += n.name
	}
	return out
}

// Header holds the identity facts recoverable from the front of a class
// file without decoding method bodies.
type Header struct {
	// Version is the class file format version.
	Version Version

	// AccessFlags is the class-level access mask.
	AccessFlags AccessFlags

	// ThisClass is the defined class in dotted binary form.
	ThisClass types.ClassName

	// SuperClass is the direct superclass in dotted binary form. It is
	// empty only for java.lang.Object and for module-info.
	SuperClass types.ClassName
}
