// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bytelens/bytelens/internal/bootclass"
	"github.com/bytelens/bytelens/internal/issue"
	"github.com/bytelens/bytelens/pkg/classpath"
)

// newInspectCommand creates the `bytelens inspect` command.
func newInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Report what each classpath entry contributes",
		Long: `Report what each classpath entry contributes.

Every entry is opened and classified: directory, archive (jar/zip), nested
archive (aar), or unsupported. Unreadable archives are reported with their
open error; resolution keeps working without them. The built-in base library
is always listed last, matching its place in the resolution order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(app, inspectClasspath(cmd.Context(), app))
		},
	}
}

func inspectClasspath(ctx context.Context, app *App) error {
	loader, err := newLoader(ctx, app)
	if err != nil {
		return err
	}
	defer loader.Close()

	fmt.Fprintln(app.stdout, TitleStyle.Render("Classpath"))
	fmt.Fprintln(app.stdout)

	writer := tabwriter.NewWriter(app.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ENTRY\tPATH\tKIND\tSTATUS\tRESOURCES")

	unreadable := 0
	for _, entry := range loader.Entries() {
		report, reportErr := loader.Report(entry.Index)
		if reportErr != nil {
			return reportErr
		}

		status := "ok"
		resources := strconv.Itoa(report.Resources)
		switch {
		case report.OpenError != nil:
			status = report.OpenError.Error()
			resources = "-"
			unreadable++
		case report.Kind == classpath.EntryKindUnsupported:
			status = "-"
			resources = "-"
		}

		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", report.Index, report.Path, report.Kind, status, resources)
	}
	fmt.Fprintf(writer, "base\t(built-in)\tbase library\tok\t%d\n", bootclass.Count())
	if err := writer.Flush(); err != nil {
		return err
	}

	if unreadable > 0 && verbose {
		renderIssueCard(app.stderr, issue.ClasspathEntryUnreadableId)
	}

	return nil
}
