// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// EntryReport describes the resolved state of one classpath entry: what kind
// it turned out to be, whether it opened, and how many resources it holds.
type EntryReport struct {
	// Index is the entry's position in the configured list.
	Index int

	// Path is the entry's filesystem location as configured.
	Path string

	// Kind is the entry's resolved classification.
	Kind EntryKind

	// OpenError is the permanent open failure for archive entries that
	// could not be opened, nil otherwise.
	OpenError error

	// Resources is the number of resources the entry holds: archive members
	// for archives, regular files for directories, zero for failed and
	// unsupported entries.
	Resources int
}

// Report forces resolution of the entry at index and describes the outcome.
// Like any other query it fails once the loader is closed.
func (l *Loader) Report(index int) (EntryReport, error) {
	if index < 0 || index >= len(l.entries) {
		return EntryReport{}, fmt.Errorf("entry index %d out of range [0, %d)", index, len(l.entries))
	}
	e := l.entries[index]
	if l.isClosed() {
		return EntryReport{}, &ClosedError{Path: string(e.path)}
	}

	e.resolve()
	report := EntryReport{
		Index:     e.index,
		Path:      string(e.path),
		Kind:      e.kind,
		OpenError: e.openErr,
	}
	switch e.kind {
	case EntryKindArchive, EntryKindNestedArchive:
		report.Resources = len(e.names)
	case EntryKindDirectory:
		report.Resources = countRegularFiles(string(e.path))
	}
	return report, nil
}

// countRegularFiles walks a directory entry counting the files it can
// resolve. Unreadable subtrees are skipped rather than failing the report.
func countRegularFiles(dir string) int {
	count := 0
	filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count
}
