// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"errors"
	"fmt"
	"iter"

	"github.com/bytelens/bytelens/internal/bootclass"
	"github.com/bytelens/bytelens/pkg/classfile"
	"github.com/bytelens/bytelens/pkg/types"
)

// ErrLoaderClosed is the sentinel error wrapped by ClosedError.
var ErrLoaderClosed = errors.New("loader closed")

// ErrClassNotFound is the sentinel error wrapped by ClassNotFoundError.
var ErrClassNotFound = errors.New("class not found")

// ClosedError is returned by every query issued after Close.
type ClosedError struct {
	// Path is the resource or entry the failed query was about.
	Path string
}

// Error implements the error interface for ClosedError.
func (e *ClosedError) Error() string {
	return fmt.Sprintf("classpath loader is closed: cannot access %q", e.Path)
}

// Unwrap returns ErrLoaderClosed for errors.Is() compatibility.
func (e *ClosedError) Unwrap() error { return ErrLoaderClosed }

// ClassNotFoundError is returned by LoadClass when no entry resolves the
// class, or when the resolving entry cannot deliver its bytes.
type ClassNotFoundError struct {
	Name  types.ClassName
	Cause error
}

// Error implements the error interface for ClassNotFoundError.
func (e *ClassNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("class %s not found: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("class %s not found", e.Name)
}

// Unwrap returns ErrClassNotFound for errors.Is() compatibility.
func (e *ClassNotFoundError) Unwrap() error { return ErrClassNotFound }

// ClassDef is a resolved class definition: the raw bytes plus the identity
// facts needed to hand it to a bytecode consumer.
type ClassDef struct {
	// Name is the dotted binary name the class was requested under.
	Name types.ClassName

	// Location is where the definition was resolved.
	Location ResourceLocation

	// Format is the class file format version of the bytes.
	Format classfile.Version

	// Bytes is the raw class file content.
	Bytes []byte
}

// FindResources returns a lazy sequence of every location resolving the
// resource, in precedence order: configured entries first, then the base
// library. The sequence is finite and restartable; re-ranging repeats the
// walk against live directory state. Archives are opened on first need.
func (l *Loader) FindResources(resource types.ResourcePath) (iter.Seq[ResourceLocation], error) {
	if l.isClosed() {
		return nil, &ClosedError{Path: string(resource)}
	}
	return func(yield func(ResourceLocation) bool) {
		if l.isClosed() {
			return
		}
		for _, e := range l.entries {
			if !e.contains(resource) {
				continue
			}
			if !yield(ResourceLocation{Entry: e.index, Origin: e.path, Path: resource}) {
				return
			}
		}
		if bootclass.Contains(resource) {
			yield(ResourceLocation{Entry: BaseLibraryEntry, Path: resource})
		}
	}, nil
}

// FindResource returns the highest-precedence location resolving the
// resource, or nil when nothing does. Absence is not an error.
func (l *Loader) FindResource(resource types.ResourcePath) (*ResourceLocation, error) {
	locations, err := l.FindResources(resource)
	if err != nil {
		return nil, err
	}
	for loc := range locations {
		return &loc, nil
	}
	return nil, nil
}

// GetResource is FindResource under the name bytecode consumers expect.
func (l *Loader) GetResource(resource types.ResourcePath) (*ResourceLocation, error) {
	return l.FindResource(resource)
}

// ReadBytes returns the bytes of a previously resolved location. Directory
// and base library locations reread live; archive locations read from the
// open member index.
func (l *Loader) ReadBytes(loc ResourceLocation) ([]byte, error) {
	if l.isClosed() {
		return nil, &ClosedError{Path: closedPath(loc)}
	}
	if loc.IsBaseLibrary() {
		data := bootclass.Bytes(loc.Path)
		if data == nil {
			return nil, fmt.Errorf("base library has no %s", loc.Path)
		}
		return append([]byte(nil), data...), nil
	}
	if loc.Entry < 0 || loc.Entry >= len(l.entries) {
		return nil, fmt.Errorf("location entry %d out of range [0, %d)", loc.Entry, len(l.entries))
	}
	return l.entries[loc.Entry].read(loc.Path)
}

// BytesForClass returns the raw definition of the named class, or (nil, nil)
// when no entry resolves it. Unlike LoadClass, absence is not a failure.
func (l *Loader) BytesForClass(name types.ClassName) ([]byte, error) {
	if l.isClosed() {
		return nil, &ClosedError{Path: string(name)}
	}
	loc, err := l.FindResource(name.AsResourcePath())
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return l.ReadBytes(*loc)
}

// LoadClass resolves the named class through the entry chain and returns its
// validated definition. A class nothing resolves is a hard failure wrapping
// ErrClassNotFound; bytes that are not a class file fail with the underlying
// format error.
func (l *Loader) LoadClass(name types.ClassName) (*ClassDef, error) {
	if l.isClosed() {
		return nil, &ClosedError{Path: string(name)}
	}
	loc, err := l.FindResource(name.AsResourcePath())
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, &ClassNotFoundError{Name: name}
	}
	data, err := l.ReadBytes(*loc)
	if err != nil {
		return nil, &ClassNotFoundError{Name: name, Cause: err}
	}
	version, err := classfile.ParseVersion(data)
	if err != nil {
		return nil, fmt.Errorf("class %s at %s: %w", name, loc, err)
	}
	return &ClassDef{
		Name:     name,
		Location: *loc,
		Format:   version,
		Bytes:    data,
	}, nil
}

// closedPath picks the path a ClosedError reports for a location: the
// backing entry when there is one, otherwise the resource itself.
func closedPath(loc ResourceLocation) string {
	if loc.IsBaseLibrary() || loc.Origin == "" {
		return string(loc.Path)
	}
	return string(loc.Origin)
}
