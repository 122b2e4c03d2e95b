// SPDX-License-Identifier: MPL-2.0

package classfile

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bytelens/bytelens/pkg/types"
)

// objectInternalName is the internal form of the root of the class hierarchy.
const objectInternalName = "java/lang/Object"

// Build emits the smallest well-formed class definition for the given name
// and Java release: an empty public class extending java.lang.Object, with no
// fields, methods, or attributes. The result round-trips through ParseHeader.
//
// Build exists for the synthesized base-library definitions and for test
// fixtures; it is not a compiler.
func Build(name types.ClassName, release int) ([]byte, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	major := release + 44
	if major < 45 || major > 0xFFFF {
		return nil, fmt.Errorf("java release %d is outside the encodable range", release)
	}

	thisInternal := strings.ReplaceAll(string(name), ".", "/")
	isObject := thisInternal == objectInternalName

	out := make([]byte, 0, 64)
	out = binary.BigEndian.AppendUint32(out, Magic)
	out = binary.BigEndian.AppendUint16(out, 0)             // minor_version
	out = binary.BigEndian.AppendUint16(out, uint16(major)) // major_version

	// Constant pool: a UTF-8/class pair for this class, plus one for the
	// superclass unless this class is java.lang.Object itself (which has
	// super_class 0, JVMS 4.1).
	if isObject {
		out = binary.BigEndian.AppendUint16(out, 3) // constant_pool_count
		out = appendUtf8Entry(out, thisInternal)    // #1
		out = appendClassEntry(out, 1)              // #2
	} else {
		out = binary.BigEndian.AppendUint16(out, 5)    // constant_pool_count
		out = appendUtf8Entry(out, thisInternal)       // #1
		out = appendClassEntry(out, 1)                 // #2
		out = appendUtf8Entry(out, objectInternalName) // #3
		out = appendClassEntry(out, 3)                 // #4
	}

	out = binary.BigEndian.AppendUint16(out, uint16(AccPublic|AccSuper))
	out = binary.BigEndian.AppendUint16(out, 2) // this_class
	if isObject {
		out = binary.BigEndian.AppendUint16(out, 0) // super_class
	} else {
		out = binary.BigEndian.AppendUint16(out, 4) // super_class
	}
	out = binary.BigEndian.AppendUint16(out, 0) // interfaces_count
	out = binary.BigEndian.AppendUint16(out, 0) // fields_count
	out = binary.BigEndian.AppendUint16(out, 0) // methods_count
	out = binary.BigEndian.AppendUint16(out, 0) // attributes_count

	return out, nil
}

func appendUtf8Entry(b []byte, s string) []byte {
	b = append(b, tagUtf8)
	b = binary.BigEndian.AppendUint16(b, uint16(len(s)))
	return append(b, s...)
}

func appendClassEntry(b []byte, nameIndex uint16) []byte {
	b = append(b, tagClass)
	return binary.BigEndian.AppendUint16(b, nameIndex)
}
