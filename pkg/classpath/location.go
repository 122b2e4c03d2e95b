// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"fmt"

	"github.com/bytelens/bytelens/pkg/types"
)

// BaseLibraryEntry is the Entry index reported for resources resolved by the
// built-in base library rather than a configured classpath entry.
const BaseLibraryEntry = -1

// ResourceLocation identifies where a resource was found: which entry, that
// entry's filesystem location, and the resource's path inside it.
type ResourceLocation struct {
	// Entry is the position of the resolving entry in the configured list,
	// or BaseLibraryEntry.
	Entry int

	// Origin is the resolving entry's filesystem location. Empty for base
	// library hits.
	Origin types.FilesystemPath

	// Path is the resource's slash-separated location inside the entry.
	Path types.ResourcePath
}

// IsBaseLibrary reports whether the resource was resolved by the base
// library.
func (loc ResourceLocation) IsBaseLibrary() bool { return loc.Entry == BaseLibraryEntry }

// String renders the location as "origin!path", or "<base library>!path" for
// base library hits.
func (loc ResourceLocation) String() string {
	if loc.IsBaseLibrary() {
		return fmt.Sprintf("<base library>!%s", loc.Path)
	}
	return fmt.Sprintf("%s!%s", loc.Origin, loc.Path)
}
