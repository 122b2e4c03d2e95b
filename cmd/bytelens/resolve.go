// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytelens/bytelens/pkg/classpath"
	"github.com/bytelens/bytelens/pkg/types"
)

// newResolveCommand creates the `bytelens resolve` command.
func newResolveCommand(app *App) *cobra.Command {
	var asClass bool

	resolveCmd := &cobra.Command{
		Use:   "resolve <resource>...",
		Short: "Resolve resources across the classpath",
		Long: `Resolve resources across the classpath.

Every location providing each resource is listed in precedence order: the
first line is the effective resolution, later lines are shadowed by it. The
built-in base library resolves last.

Resources are named by their path inside an entry ("com/example/App.class",
"logback.xml"). With --class, arguments are dotted class names instead and
are mapped to their compiled definition paths.`,
		Example: `  bytelens resolve com/example/App.class
  bytelens resolve --class com.example.App java.lang.String
  bytelens resolve -c target/classes -c libs/core.jar assets/logo.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleCommandError(app, resolveResources(cmd.Context(), app, args, asClass))
		},
	}

	resolveCmd.Flags().BoolVar(&asClass, "class", false, "treat arguments as dotted class names")

	return resolveCmd
}

func resolveResources(ctx context.Context, app *App, args []string, asClass bool) error {
	loader, err := newLoader(ctx, app)
	if err != nil {
		return err
	}
	defer loader.Close()

	missing := 0
	for i, arg := range args {
		resource, resourceErr := resourceForArg(arg, asClass)
		if resourceErr != nil {
			return resourceErr
		}

		if i > 0 {
			fmt.Fprintln(app.stdout)
		}
		fmt.Fprintln(app.stdout, CmdStyle.Render(string(resource)))

		locations, findErr := loader.FindResources(resource)
		if findErr != nil {
			return findErr
		}

		found := 0
		for loc := range locations {
			found++
			line := "  " + describeLocation(loc)
			if found > 1 {
				// Shadowed by an earlier entry; shown dimmed.
				line = VerboseStyle.Render(line)
			}
			fmt.Fprintln(app.stdout, line)
		}
		if found == 0 {
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("  (not found)"))
			missing++
		}
	}

	if missing > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d resources not found", missing, len(args))}
	}

	return nil
}

// resourceForArg maps a command argument to the resource path to resolve.
func resourceForArg(arg string, asClass bool) (types.ResourcePath, error) {
	if asClass {
		name := types.ClassName(arg)
		if err := name.Validate(); err != nil {
			return "", err
		}
		return name.AsResourcePath(), nil
	}

	resource := types.ResourcePath(arg)
	if err := resource.Validate(); err != nil {
		return "", err
	}
	return resource, nil
}

// describeLocation renders one resolution line: the entry position and its
// filesystem origin, or the base library marker.
func describeLocation(loc classpath.ResourceLocation) string {
	if loc.IsBaseLibrary() {
		return "[base] built-in base library"
	}
	return fmt.Sprintf("[%d] %s", loc.Entry, loc.Origin)
}
