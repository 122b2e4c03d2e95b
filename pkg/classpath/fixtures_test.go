// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"

	"github.com/bytelens/bytelens/pkg/classfile"
	"github.com/bytelens/bytelens/pkg/types"
)

// classBytes builds a minimal class definition for fixture archives.
func classBytes(t *testing.T, name types.ClassName, release int) []byte {
	t.Helper()
	data, err := classfile.Build(name, release)
	if err != nil {
		t.Fatalf("building class %s: %v", name, err)
	}
	return data
}

// makeJar writes a jar at path with the given members.
func makeJar(t *testing.T, path string, members map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	zw := zip.NewWriter(f)
	for name, data := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s to %s: %v", name, path, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s to %s: %v", name, path, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("finishing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

// makeAar writes an aar at path whose classes.jar member holds the given
// class members.
func makeAar(t *testing.T, path string, members map[string][]byte) {
	t.Helper()
	var inner bytes.Buffer
	zw := zip.NewWriter(&inner)
	for name, data := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s to classes.jar: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s to classes.jar: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("finishing classes.jar: %v", err)
	}
	makeJar(t, path, map[string][]byte{
		"AndroidManifest.xml": []byte("<manifest/>"),
		nestedClassesMember:   inner.Bytes(),
	})
}

// writeClassDir lays the given members out under dir using host separators.
func writeClassDir(t *testing.T, dir string, members map[string][]byte) {
	t.Helper()
	for name, data := range members {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			t.Fatalf("writing %s: %v", full, err)
		}
	}
}

// classpathOf converts plain paths to a classpath entry list.
func classpathOf(paths ...string) []types.FilesystemPath {
	out := make([]types.FilesystemPath, len(paths))
	for i, p := range paths {
		out[i] = types.FilesystemPath(p)
	}
	return out
}

// captureLogs returns a debug-level logger writing to the returned buffer.
func captureLogs(t *testing.T) (*log.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return logger, &buf
}

// countLevel counts log lines of the given level marker ("WARN", "DEBU").
func countLevel(buf *bytes.Buffer, level string) int {
	return bytes.Count(buf.Bytes(), []byte(level))
}
