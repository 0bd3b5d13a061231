// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ExecutableNotFoundId Id = iota + 1
	UnsupportedPlatformId
	CompilationFailedId
	CommandTimeoutId
	ConfigLoadFailedId
	InvalidArgumentsId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, every issue type is documented upstream
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
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# The Sass executable could not be started!

flechette runs the standalone dart-sass build shipped for your platform.
The file it tried to run is missing or is not executable.

## Things you can try:
- Show which executable is resolved and whether it answers:
~~~
$ flechette version --check
~~~

- Point flechette at another build in your config file:
~~~toml
executable = "/opt/dart-sass/sass"
~~~

- Or for a single run:
~~~
$ FLECHETTE_EXECUTABLE=/opt/dart-sass/sass flechette compile main.scss
~~~`,
		docLinks: []HttpLink{"https://sass-lang.com/install/"},
		extLinks: []HttpLink{"https://github.com/sass/dart-sass/releases"},
	}

	unsupportedPlatformIssue = &Issue{
		id: UnsupportedPlatformId,
		mdMsg: `
# No bundled Sass build for this platform!

Bundled builds exist for:
- linux: arm, arm64, ia32, x64
- macos: arm64, x64
- windows: ia32, x64

## Things you can try:
- Install dart-sass yourself and set the ` + "`executable`" + ` config key to it.`,
		docLinks: []HttpLink{"https://sass-lang.com/install/"},
	}

	compilationFailedIssue = &Issue{
		id: CompilationFailedId,
		mdMsg: `
# Sass reported an error!

The compiler exited with a non-zero code. Its output above tells what went wrong.

## Common exit codes:
- **64**: invalid command line, usually an unknown option
- **65**: the stylesheet has a syntax or semantic error
- **66**: an input file or load path could not be read

## Things you can try:
- Preview the exact command without running it:
~~~
$ flechette compile --dry-run main.scss
~~~`,
		docLinks: []HttpLink{"https://sass-lang.com/documentation/cli/dart-sass/"},
	}

	commandTimeoutIssue = &Issue{
		id: CommandTimeoutId,
		mdMsg: `
# Sass did not finish in time!

The process was killed once the timeout expired.

## Things you can try:
- Raise the timeout, in seconds, in your config file:
~~~toml
timeout = 120
~~~

- Check whether a load path points at a huge or recursive directory.`,
		docLinks: []HttpLink{"https://sass-lang.com/documentation/cli/dart-sass/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file exists but could not be read or does not match the schema.

## Things you can try:
- Show where flechette looks for its config:
~~~
$ flechette config path
~~~

- Print the effective configuration as TOML and compare:
~~~
$ flechette config dump
~~~

## Accepted keys:
~~~toml
executable = ""
vendor_dir = ""
timeout = 30
verbosity = 4
log_file = ""

[compile]
style = "expanded"
load_paths = []
source_map = true
~~~`,
		docLinks: []HttpLink{"https://sass-lang.com/documentation/cli/dart-sass/"},
	}

	invalidArgumentsIssue = &Issue{
		id: InvalidArgumentsId,
		mdMsg: `
# Invalid compile arguments!

The given arguments were rejected before starting Sass.

## Things you can try:
- Check that the source file and every load path exist.
- Use one of the supported output styles: ` + "`expanded`" + ` or ` + "`compressed`" + `.
- List every accepted option:
~~~
$ flechette compile --help
~~~`,
		docLinks: []HttpLink{"https://sass-lang.com/documentation/cli/dart-sass/"},
	}

	issues = map[Id]*Issue{
		executableNotFoundIssue.Id():  executableNotFoundIssue,
		unsupportedPlatformIssue.Id(): unsupportedPlatformIssue,
		compilationFailedIssue.Id():   compilationFailedIssue,
		commandTimeoutIssue.Id():      commandTimeoutIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		invalidArgumentsIssue.Id():    invalidArgumentsIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
