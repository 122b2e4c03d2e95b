// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"

	"github.com/bytelens/bytelens/pkg/types"
)

// nestedClassesMember is the archive member holding the compiled classes of a
// nested (.aar) archive.
const nestedClassesMember = "classes.jar"

// ErrEmptyArchive is the open failure reason recorded for zero-length
// archive files.
var ErrEmptyArchive = errors.New("zip file is empty")

// EntryKind classifies a classpath entry after its first inspection.
type EntryKind int

const (
	// EntryKindUnsupported marks entries that resolve nothing: missing
	// paths and files that are neither archives nor directories.
	EntryKindUnsupported EntryKind = iota

	// EntryKindDirectory marks directories of compiled classes.
	EntryKindDirectory

	// EntryKindArchive marks jar/zip archives.
	EntryKindArchive

	// EntryKindNestedArchive marks aar archives read through their embedded
	// classes.jar member.
	EntryKindNestedArchive
)

// String returns the human-readable name of the EntryKind.
func (k EntryKind) String() string {
	switch k {
	case EntryKindDirectory:
		return "directory"
	case EntryKindArchive:
		return "archive"
	case EntryKindNestedArchive:
		return "nested archive"
	default:
		return "unsupported"
	}
}

// entry is one classpath position. Its kind, and for archives the open
// result, are computed once on first use under mu; afterwards the resolved
// fields are read-only. A failed open is permanent: the entry behaves as
// empty and the failure is logged exactly once, when it happens.
type entry struct {
	index  int
	path   types.FilesystemPath
	logger *log.Logger

	mu       sync.Mutex
	resolved bool
	closed   bool
	kind     EntryKind
	openErr  error
	reader   *zip.ReadCloser
	names    map[string]*zip.File
	tempJar  string
}

// resolve determines the entry kind and opens archive-backed entries. It is
// idempotent; the first call wins, including a close that arrives first.
func (e *entry) resolve() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.resolved {
		return
	}
	e.resolved = true

	info, err := os.Stat(string(e.path))
	if err != nil {
		e.kind = EntryKindUnsupported
		return
	}
	if info.IsDir() {
		e.kind = EntryKindDirectory
		return
	}

	switch strings.ToLower(filepath.Ext(string(e.path))) {
	case ".jar", ".zip":
		e.kind = EntryKindArchive
		e.openArchive(string(e.path), info.Size())
	case ".aar":
		e.kind = EntryKindNestedArchive
		e.openNestedArchive(info.Size())
	default:
		e.kind = EntryKindUnsupported
	}
}

// openArchive opens the zip file at name and builds the member index.
// Called with mu held. On failure it records the permanent reason and logs
// it: one warning naming the entry, one debug line naming the cause.
func (e *entry) openArchive(name string, size int64) {
	reader, names, err := openZipIndex(name, size)
	if err != nil {
		e.fail(err)
		return
	}
	e.reader = reader
	e.names = names
}

// openNestedArchive extracts the classes.jar member of an aar file to a
// temporary file and opens that as the effective archive. Called with mu
// held. The temporary file lives until the loader closes.
func (e *entry) openNestedArchive(size int64) {
	outer, _, err := openZipIndex(string(e.path), size)
	if err != nil {
		e.fail(err)
		return
	}
	defer outer.Close()

	var member *zip.File
	for _, f := range outer.File {
		if f.Name == nestedClassesMember {
			member = f
			break
		}
	}
	if member == nil {
		e.fail(fmt.Errorf("no %s member", nestedClassesMember))
		return
	}

	tempJar, err := extractToTemp(member)
	if err != nil {
		e.fail(err)
		return
	}

	reader, names, err := openZipIndex(tempJar, int64(member.UncompressedSize64))
	if err != nil {
		os.Remove(tempJar)
		e.fail(err)
		return
	}
	e.reader = reader
	e.names = names
	e.tempJar = tempJar
}

// fail records the permanent open failure and emits the one-time log lines.
func (e *entry) fail(err error) {
	e.openErr = err
	e.logger.Warn("Unable to load classes from classpath entry", "path", e.path)
	e.logger.Debug("Unable to open archive", "path", e.path, "cause", err)
}

// contains reports whether the entry currently resolves the resource.
// Directories are consulted live; archives answer from the member index.
func (e *entry) contains(resource types.ResourcePath) bool {
	e.resolve()
	switch e.kind {
	case EntryKindDirectory:
		info, err := os.Stat(e.directoryFile(resource))
		return err == nil && info.Mode().IsRegular()
	case EntryKindArchive, EntryKindNestedArchive:
		if e.openErr != nil {
			return false
		}
		_, ok := e.names[string(resource)]
		return ok
	default:
		return false
	}
}

// read returns the resource's bytes. The caller is expected to have located
// the resource first; a vanished resource reports fs.ErrNotExist.
func (e *entry) read(resource types.ResourcePath) ([]byte, error) {
	e.resolve()
	switch e.kind {
	case EntryKindDirectory:
		data, err := os.ReadFile(e.directoryFile(resource))
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", resource, e.path, err)
		}
		return data, nil
	case EntryKindArchive, EntryKindNestedArchive:
		if e.openErr != nil {
			return nil, fmt.Errorf("%s: %w", resource, fs.ErrNotExist)
		}
		member, ok := e.names[string(resource)]
		if !ok {
			return nil, fmt.Errorf("%s: %w", resource, fs.ErrNotExist)
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", resource, e.path, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", resource, e.path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%s: %w", resource, fs.ErrNotExist)
	}
}

// directoryFile maps a slash-separated resource path into the entry's
// directory using the host separator.
func (e *entry) directoryFile(resource types.ResourcePath) string {
	return filepath.Join(string(e.path), filepath.FromSlash(string(resource)))
}

// close releases the archive reader and any extracted temporary file. An
// entry closed before its first use resolves as unsupported rather than
// opening archives nobody will query.
func (e *entry) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if !e.resolved {
		e.resolved = true
		e.kind = EntryKindUnsupported
		return
	}
	if e.reader != nil {
		e.reader.Close()
	}
	if e.tempJar != "" {
		os.Remove(e.tempJar)
	}
}

// openZipIndex opens a zip file and indexes its members by name. Zero-length
// files get the canonical "zip file is empty" reason instead of the format
// error the zip reader would report.
func openZipIndex(name string, size int64) (*zip.ReadCloser, map[string]*zip.File, error) {
	if size == 0 {
		return nil, nil, ErrEmptyArchive
	}
	reader, err := zip.OpenReader(name)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		names[f.Name] = f
	}
	return reader, names, nil
}

// extractToTemp copies an archive member to a fresh temporary file and
// returns its path.
func extractToTemp(member *zip.File) (string, error) {
	rc, err := member.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s member: %w", member.Name, err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp("", "bytelens-classes-*.jar")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("extracting %s member: %w", member.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("extracting %s member: %w", member.Name, err)
	}
	return tmp.Name(), nil
}
