// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ManifestNotFoundId
	ManifestParseErrorId
	ClasspathEntryUnreadableId
	ClassNotFoundId
	ClassFileMalformedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the bytelens configuration file.

## Configuration file locations:
- Linux: ~/.config/bytelens/config.cue
- macOS: ~/Library/Application Support/bytelens/config.cue
- Windows: %APPDATA%\bytelens\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ bytelens config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/bytelens/config.cue
~~~

## Example configuration:
~~~cue
classpath: [
    "/home/user/project/target/classes",
    "/home/user/.m2/repository/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar",
]

log_level: "warn"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No classpath manifest found!

The manifest file passed via --classpath-file does not exist.

## Things you can try:
- Check the path for typos
- Create a manifest next to your project:
~~~toml
# classpath.toml
entries = [
    "target/classes",
    "lib/slf4j-api-2.0.9.jar",
]
~~~

- Or pass entries directly on the command line:
~~~
$ bytelens resolve --classpath target/classes --classpath lib/app.jar com.example.Main
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse classpath manifest!

Your manifest file contains syntax errors or an unexpected structure.

## Common issues:
- Invalid TOML syntax (missing quotes, unbalanced brackets)
- An ` + "`entries`" + ` key that is not an array of strings
- Unknown keys at the top level

## Things you can try:
- Check the error message above for the specific line
- Compare against a minimal valid manifest:
~~~toml
entries = [
    "target/classes",
    "lib/app.jar",
]
~~~`,
	}

	classpathEntryUnreadableIssue = &Issue{
		id: ClasspathEntryUnreadableId,
		mdMsg: `
# Classpath entry could not be opened!

One of your classpath entries exists but could not be read as an archive.

## Common causes:
- The file is truncated or corrupt (interrupted download or build)
- The file is empty
- An .aar archive without a classes.jar member
- Missing read permissions

## Things you can try:
- Inspect the state of every entry:
~~~
$ bytelens inspect --classpath <entry>
~~~

- Re-download or rebuild the archive
- Check file permissions

Unreadable entries are skipped during resolution, so other entries
still work. Classes that only exist in the broken archive will not
be found.`,
	}

	classNotFoundIssue = &Issue{
		id: ClassNotFoundId,
		mdMsg: `
# Class not found!

The class you asked for is not present on any classpath entry.

## Things you can try:
- Check the binary name: packages are separated by dots, inner
  classes by ` + "`$`" + `:
~~~
$ bytelens dump java.util.Map$Entry
~~~

- List where a class would be resolved from:
~~~
$ bytelens resolve com.example.Main
~~~

- Inspect your entries to see how many classes each one holds:
~~~
$ bytelens inspect
~~~

- Verify the jar actually contains the class:
~~~
$ unzip -l app.jar | grep Main.class
~~~`,
	}

	classFileMalformedIssue = &Issue{
		id: ClassFileMalformedId,
		mdMsg: `
# Malformed class file!

The resolved file does not look like compiled JVM bytecode.

## Common causes:
- The file is truncated (partial build output)
- A non-class file was stored under a .class path
- The archive member is corrupt

## Things you can try:
- Rebuild the project that produced the file
- Check the first bytes of the file; every class file starts with
  the magic number CA FE BA BE:
~~~
$ xxd -l 4 Main.class
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():         configLoadFailedIssue,
		manifestNotFoundIssue.Id():         manifestNotFoundIssue,
		manifestParseErrorIssue.Id():       manifestParseErrorIssue,
		classpathEntryUnreadableIssue.Id(): classpathEntryUnreadableIssue,
		classNotFoundIssue.Id():            classNotFoundIssue,
		classFileMalformedIssue.Id():       classFileMalformedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
