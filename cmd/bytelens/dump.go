// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bytelens/bytelens/internal/issue"
	"github.com/bytelens/bytelens/pkg/classfile"
	"github.com/bytelens/bytelens/pkg/classpath"
	"github.com/bytelens/bytelens/pkg/platform"
	"github.com/bytelens/bytelens/pkg/types"
)

// newDumpCommand creates the `bytelens dump` command.
func newDumpCommand(app *App) *cobra.Command {
	var (
		output string
		save   bool
	)

	dumpCmd := &cobra.Command{
		Use:   "dump <class>",
		Short: "Load a class and print its header facts",
		Long: `Load a class through the classpath and print its header facts: format
version and Java release, class and super class names, and access flags.

With --save or --output the raw class file bytes are written out as well,
for handing to other tooling.`,
		Example: `  bytelens dump com.example.App
  bytelens dump --save com.example.App
  bytelens dump -o App.class com.example.App`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(app, dumpClass(cmd.Context(), app, args[0], output, save))
		},
	}

	dumpCmd.Flags().StringVarP(&output, "output", "o", "", "write the raw class bytes to this file")
	dumpCmd.Flags().BoolVar(&save, "save", false, "write the raw class bytes to <SimpleName>.class")

	return dumpCmd
}

func dumpClass(ctx context.Context, app *App, arg, output string, save bool) error {
	name := types.ClassName(arg)
	if err := name.Validate(); err != nil {
		return err
	}

	loader, err := newLoader(ctx, app)
	if err != nil {
		return err
	}
	defer loader.Close()

	def, err := loader.LoadClass(name)
	if err != nil {
		switch {
		case errors.Is(err, classpath.ErrClassNotFound):
			return newServiceError(err, issue.ClassNotFoundId, RenderClassNotFoundError(name, loader.Entries()))
		case errors.Is(err, classfile.ErrNotClassFile),
			errors.Is(err, classfile.ErrTruncatedClassFile),
			errors.Is(err, classfile.ErrMalformedClassFile):
			return newServiceError(err, issue.ClassFileMalformedId, RenderMalformedClassError(name, err))
		}
		return err
	}

	// The loader validated the version envelope; the constant pool section
	// can still be inconsistent.
	header, err := classfile.ParseHeader(def.Bytes)
	if err != nil {
		return newServiceError(err, issue.ClassFileMalformedId, RenderMalformedClassError(name, err))
	}

	printClassHeader(app.stdout, def, header)

	if output == "" && save {
		output, err = deriveOutputFile(name, runtime.GOOS)
		if err != nil {
			return err
		}
	}
	if output != "" {
		if err := os.WriteFile(output, def.Bytes, 0o644); err != nil {
			return fmt.Errorf("failed to write class bytes: %w", err)
		}
		fmt.Fprintf(app.stdout, "\n%s Wrote %d bytes to %s\n", SuccessStyle.Render("✓"), len(def.Bytes), output)
	}

	return nil
}

func printClassHeader(w io.Writer, def *classpath.ClassDef, header *classfile.Header) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render(string(def.Name)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Resolved from"), valueStyle.Render(def.Location.String()))
	fmt.Fprintf(w, "%s: %s (Java %d)\n", keyStyle.Render("Format version"), valueStyle.Render(def.Format.String()), def.Format.Release())
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Class"), valueStyle.Render(string(header.ThisClass)))
	if header.SuperClass != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Super class"), valueStyle.Render(string(header.SuperClass)))
	}
	if flags := header.AccessFlags.String(); flags != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Access flags"), valueStyle.Render(flags))
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Size"), valueStyle.Render(fmt.Sprintf("%d bytes", len(def.Bytes))))
}

// deriveOutputFile picks the default output filename for a dumped class: the
// class simple name plus ".class". Windows reserves device names like CON and
// AUX regardless of extension, so those derivations are rejected there rather
// than producing a file the filesystem cannot store.
func deriveOutputFile(name types.ClassName, goos string) (string, error) {
	simple := string(name)
	if i := strings.LastIndex(simple, "."); i >= 0 {
		simple = simple[i+1:]
	}
	filename := simple + ".class"
	if goos == platform.Windows && platform.IsWindowsReservedName(filename) {
		return "", fmt.Errorf("%q is a reserved name on Windows: pass an explicit --output path", filename)
	}
	return filename, nil
}
