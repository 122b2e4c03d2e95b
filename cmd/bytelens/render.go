// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/bytelens/bytelens/pkg/classpath"
	"github.com/bytelens/bytelens/pkg/types"
)

// RenderClassNotFoundError creates a styled error message for a class that no
// classpath entry defines.
func RenderClassNotFoundError(name types.ClassName, entries []classpath.Entry) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Class not found!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("No classpath entry defines %s.\n\n",
		renderCommandStyle.Render("'"+string(name)+"'")))

	sb.WriteString(renderLabelStyle.Render("Searched entries:"))
	sb.WriteString("\n")
	if len(entries) == 0 {
		sb.WriteString(renderValueStyle.Render("  (none configured)\n"))
	} else {
		for _, entry := range entries {
			sb.WriteString(renderValueStyle.Render(fmt.Sprintf("  • [%d] %s\n", entry.Index, entry.Path)))
		}
	}
	sb.WriteString(renderValueStyle.Render("  • base library (built-in)\n"))

	sb.WriteString("\n")
	sb.WriteString(renderHintStyle.Render("Check the class name spelling, and verify the classpath includes the archive or directory that defines it."))
	sb.WriteString("\n")

	return sb.String()
}

// RenderManifestError creates a styled error message for a classpath manifest
// that cannot be loaded.
func RenderManifestError(path string, err error) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Classpath manifest failed!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("The manifest %s could not be used.\n\n",
		renderCommandStyle.Render("'"+path+"'")))

	sb.WriteString(renderLabelStyle.Render("Error:  "))
	sb.WriteString(renderValueStyle.Render(err.Error()))
	sb.WriteString("\n\n")
	sb.WriteString(renderHintStyle.Render("Fix the manifest file, or pass entries directly with --classpath."))
	sb.WriteString("\n")

	return sb.String()
}

// RenderMalformedClassError creates a styled error message for resolved class
// bytes that do not parse as a class file.
func RenderMalformedClassError(name types.ClassName, err error) string {
	var sb strings.Builder

	sb.WriteString(renderHeaderStyle.Render("✗ Malformed class file!"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("The resolved bytes for %s are not a valid class file.\n\n",
		renderCommandStyle.Render("'"+string(name)+"'")))

	sb.WriteString(renderLabelStyle.Render("Error:  "))
	sb.WriteString(renderValueStyle.Render(err.Error()))
	sb.WriteString("\n\n")
	sb.WriteString(renderHintStyle.Render("A resource in a higher-precedence entry may be shadowing the real class definition."))
	sb.WriteString("\n")

	return sb.String()
}
