// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/bytelens/bytelens/pkg/classfile"
	"github.com/bytelens/bytelens/pkg/classpath"
	"github.com/bytelens/bytelens/pkg/platform"
	"github.com/bytelens/bytelens/pkg/types"
)

func TestDeriveOutputFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		className types.ClassName
		goos      string
		want      string
		wantErr   bool
	}{
		{
			name:      "package-qualified class",
			className: "com.example.App",
			goos:      platform.Linux,
			want:      "App.class",
		},
		{
			name:      "default package class",
			className: "Main",
			goos:      platform.Linux,
			want:      "Main.class",
		},
		{
			name:      "inner class keeps the marker",
			className: "com.example.Outer$Inner",
			goos:      platform.Linux,
			want:      "Outer$Inner.class",
		},
		{
			name:      "reserved device name on windows",
			className: "com.example.con",
			goos:      platform.Windows,
			wantErr:   true,
		},
		{
			name:      "reserved device name elsewhere is fine",
			className: "com.example.con",
			goos:      platform.Linux,
			want:      "con.class",
		},
		{
			name:      "numbered device name on windows",
			className: "legacy.COM1",
			goos:      platform.Windows,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := deriveOutputFile(tt.className, tt.goos)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("deriveOutputFile() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("deriveOutputFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("deriveOutputFile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintClassHeader(t *testing.T) {
	t.Parallel()

	def := &classpath.ClassDef{
		Name: "com.example.App",
		Location: classpath.ResourceLocation{
			Entry:  0,
			Origin: "libs/core.jar",
			Path:   "com/example/App.class",
		},
		Format: classfile.Version{Major: 55},
		Bytes:  make([]byte, 128),
	}
	header := &classfile.Header{
		Version:     classfile.Version{Major: 55},
		AccessFlags: classfile.AccPublic | classfile.AccSuper,
		ThisClass:   "com.example.App",
		SuperClass:  "java.lang.Object",
	}

	var sb strings.Builder
	printClassHeader(&sb, def, header)
	out := sb.String()

	for _, want := range []string{
		"com.example.App",
		"libs/core.jar!com/example/App.class",
		"55.0",
		"(Java 11)",
		"java.lang.Object",
		"public",
		"128 bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q; got:\n%s", want, out)
		}
	}
}

func TestPrintClassHeaderOmitsEmptySuper(t *testing.T) {
	t.Parallel()

	def := &classpath.ClassDef{
		Name:     "java.lang.Object",
		Location: classpath.ResourceLocation{Entry: classpath.BaseLibraryEntry, Path: "java/lang/Object.class"},
		Format:   classfile.Version{Major: 55},
		Bytes:    make([]byte, 64),
	}
	header := &classfile.Header{
		Version:     classfile.Version{Major: 55},
		AccessFlags: classfile.AccPublic,
		ThisClass:   "java.lang.Object",
	}

	var sb strings.Builder
	printClassHeader(&sb, def, header)

	if strings.Contains(sb.String(), "Super class") {
		t.Errorf("output should omit the super class line for java.lang.Object; got:\n%s", sb.String())
	}
}
