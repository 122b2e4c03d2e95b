// SPDX-License-Identifier: MPL-2.0

// Package classpath resolves named binary resources across an ordered list of
// classpath entries: zip/jar archives, aar archives with an embedded
// classes.jar, and directories of compiled classes. It is the read side of a
// bytecode analysis pipeline, and it is isolated: lookups never consult the
// hosting process, only the configured entries plus a fixed base library of
// synthesized core Java definitions.
//
// Entry order is precedence. Construction performs no I/O; each entry is
// inspected and (for archives) opened at most once, on first use. An entry
// that cannot be opened is reported in the log and then behaves as empty for
// the lifetime of the loader. Unsupported entries are silently inert.
//
// A Loader is safe for concurrent use until Close, which releases every open
// archive; afterwards every query fails with an error wrapping
// ErrLoaderClosed.
package classpath

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/bytelens/bytelens/pkg/types"
)

// Loader resolves resources and class definitions across classpath entries.
// Create one with New and release it with Close.
type Loader struct {
	logger  *log.Logger
	entries []*entry
	closed  atomic.Bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report entries that cannot be opened.
// The default is log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New creates a loader over the given classpath entries. Order is
// significant: earlier entries shadow later ones, and duplicates are kept as
// distinct positions. The list may be empty, in which case only the base
// library resolves. No filesystem access happens until the first query.
func New(paths []types.FilesystemPath, opts ...Option) *Loader {
	l := &Loader{logger: log.Default()}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = make([]*entry, len(paths))
	for i, p := range paths {
		l.entries[i] = &entry{index: i, path: p, logger: l.logger}
	}
	return l
}

// Entries returns the configured entry list in precedence order. It reports
// configuration, not filesystem state, and stays available after Close.
func (l *Loader) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = Entry{Index: e.index, Path: e.path}
	}
	return out
}

// Entry is one configured classpath position.
type Entry struct {
	// Index is the position in the configured list.
	Index int

	// Path is the entry's filesystem location as configured.
	Path types.FilesystemPath
}

// Close releases every archive the loader has opened and deletes any
// temporary files extracted from nested archives. It never fails and may be
// called any number of times, from any goroutine; only the first call does
// work. Queries issued after Close fail with an error wrapping
// ErrLoaderClosed. In-flight queries are not interrupted.
func (l *Loader) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	for _, e := range l.entries {
		e.close()
	}
	return nil
}

func (l *Loader) isClosed() bool { return l.closed.Load() }
