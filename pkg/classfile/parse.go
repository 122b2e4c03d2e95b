// SPDX-License-Identifier: MPL-2.0

package classfile

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bytelens/bytelens/pkg/types"
)

// Constant pool entry tags, JVMS table 4.4-B.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// ParseVersion reads the magic and format version from the front of a class
// file. It is the cheap validity check used when handing out class bytes.
func ParseVersion(data []byte) (Version, error) {
	if len(data) < 8 {
		return Version{}, fmt.Errorf("%w: %d bytes, need at least 8", ErrTruncatedClassFile, len(data))
	}
	if magic := binary.BigEndian.Uint32(data[0:4]); magic != Magic {
		return Version{}, fmt.Errorf("%w: magic 0x%08X", ErrNotClassFile, magic)
	}
	return Version{
		Minor: binary.BigEndian.Uint16(data[4:6]),
		Major: binary.BigEndian.Uint16(data[6:8]),
	}, nil
}

// ParseHeader reads the class file far enough to recover its identity: the
// format version, access flags, class name, and super class name. The
// constant pool is scanned, not modelled; entries other than the class and
// UTF-8 items referenced by the header are skipped over.
func ParseHeader(data []byte) (*Header, error) {
	version, err := ParseVersion(data)
	if err != nil {
		return nil, err
	}

	r := &reader{data: data, off: 8}

	cpCount, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading constant pool count: %w", err)
	}
	if cpCount == 0 {
		return nil, fmt.Errorf("%w: constant pool count is zero", ErrMalformedClassFile)
	}

	utf8s := make(map[uint16]string)
	classNameIndex := make(map[uint16]uint16)

	// Entries are numbered 1..count-1; long and double entries occupy two
	// slots (JVMS 4.4.5).
	for i := uint16(1); i < cpCount; i++ {
		tag, err := r.u1()
		if err != nil {
			return nil, fmt.Errorf("reading constant pool entry %d tag: %w", i, err)
		}
		switch tag {
		case tagUtf8:
			length, err := r.u2()
			if err != nil {
				return nil, fmt.Errorf("reading constant pool entry %d length: %w", i, err)
			}
			raw, err := r.bytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("reading constant pool entry %d bytes: %w", i, err)
			}
			utf8s[i] = string(raw)
		case tagClass:
			nameIndex, err := r.u2()
			if err != nil {
				return nil, fmt.Errorf("reading constant pool entry %d name index: %w", i, err)
			}
			classNameIndex[i] = nameIndex
		case tagInteger, tagFloat:
			if err := r.skip(4); err != nil {
				return nil, fmt.Errorf("skipping constant pool entry %d: %w", i, err)
			}
		case tagLong, tagDouble:
			if err := r.skip(8); err != nil {
				return nil, fmt.Errorf("skipping constant pool entry %d: %w", i, err)
			}
			i++
		case tagString, tagMethodType, tagModule, tagPackage:
			if err := r.skip(2); err != nil {
				return nil, fmt.Errorf("skipping constant pool entry %d: %w", i, err)
			}
		case tagMethodHandle:
			if err := r.skip(3); err != nil {
				return nil, fmt.Errorf("skipping constant pool entry %d: %w", i, err)
			}
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			if err := r.skip(4); err != nil {
				return nil, fmt.Errorf("skipping constant pool entry %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("%w: unknown constant pool tag %d at entry %d", ErrMalformedClassFile, tag, i)
		}
	}

	access, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading access flags: %w", err)
	}
	thisIndex, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	superIndex, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	thisName, err := resolveClassName(utf8s, classNameIndex, thisIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving this_class: %w", err)
	}

	var superName types.ClassName
	if superIndex != 0 {
		superName, err = resolveClassName(utf8s, classNameIndex, superIndex)
		if err != nil {
			return nil, fmt.Errorf("resolving super_class: %w", err)
		}
	}

	return &Header{
		Version:     version,
		AccessFlags: AccessFlags(access),
		ThisClass:   thisName,
		SuperClass:  superName,
	}, nil
}

// resolveClassName follows a class entry to its UTF-8 name and converts the
// internal slash form to the dotted binary form.
func resolveClassName(utf8s map[uint16]string, classNameIndex map[uint16]uint16, index uint16) (types.ClassName, error) {
	nameIndex, ok := classNameIndex[index]
	if !ok {
		return "", fmt.Errorf("%w: index %d is not a class entry", ErrMalformedClassFile, index)
	}
	internal, ok := utf8s[nameIndex]
	if !ok {
		return "", fmt.Errorf("%w: class entry %d references missing UTF-8 entry %d", ErrMalformedClassFile, index, nameIndex)
	}
	return types.ClassName(strings.ReplaceAll(internal, "/", ".")), nil
}

// reader is a bounds-checked cursor over class file bytes.
type reader struct {
	data []byte
	off  int
}

func (r *reader) u1() (byte, error) {
	if r.off+1 > len(r.data) {
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncatedClassFile, r.off)
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) u2() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, fmt.Errorf("%w: at offset %d", ErrTruncatedClassFile, r.off)
	}
	v := binary.BigEndian.Uint16(r.data[r.off : r.off+2])
	r.off += 2
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.off+n > len(r.data) {
		return nil, fmt.Errorf("%w: at offset %d", ErrTruncatedClassFile, r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) skip(n int) error {
	if r.off+n > len(r.data) {
		return fmt.Errorf("%w: at offset %d", ErrTruncatedClassFile, r.off)
	}
	r.off += n
	return nil
}
