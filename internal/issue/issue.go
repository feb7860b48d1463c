// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigCorruptId Id = iota + 1
	CommandCollisionId
	UnknownModuleId
	ModulesConfigNotFoundId
	DependencyMissingId
	StaleModuleReferenceId
	ConfigLoadFailedId
	CoolifyUnreachableId
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

	configCorruptIssue = &Issue{
		id: ConfigCorruptId,
		mdMsg: `
# Module configuration is corrupt!

The modules file exists but could not be parsed. To avoid losing your
module selections, max never deletes or overwrites a corrupt file.

## File locations:
- Linux: ~/.config/maxcli/modules.json
- macOS: ~/Library/Application Support/maxcli/modules.json
- Windows: %APPDATA%\maxcli\modules.json

## Things you can try:
- Inspect the file for truncation or stray edits
- Restore it from a backup
- If the selections are not worth keeping, remove the file and a fresh
  default one will be created on the next run:
~~~
$ rm ~/.config/maxcli/modules.json
~~~

Module management commands (list, enable, disable) stay available even
while the file is corrupt.`,
	}

	commandCollisionIssue = &Issue{
		id: CommandCollisionId,
		mdMsg: `
# Command name collision!

Two enabled modules both want to register the same command name. max
refuses to guess which one you meant, so no module commands were
mounted.

## Things you can try:
- Disable one of the colliding modules:
~~~
$ max modules disable <module>
~~~

- List modules and the commands each one provides:
~~~
$ max modules list
~~~

Module management commands stay available so you can resolve the
conflict.`,
	}

	unknownModuleIssue = &Issue{
		id: UnknownModuleId,
		mdMsg: `
# Unknown module!

The module name you specified is not in the module registry.

## Things you can try:
- List all known modules:
~~~
$ max modules list
~~~

- Check for typos in the module name (names use snake_case, e.g.
  ssh_manager)

Nothing was changed: enable and disable apply all names or none.`,
	}

	modulesConfigNotFoundIssue = &Issue{
		id: ModulesConfigNotFoundId,
		mdMsg: `
# No modules file found!

There is no modules.json yet, so max created one with the default
module selection.

## Default modules:
- ssh_manager
- setup_manager

## Things you can try:
- See what is enabled:
~~~
$ max modules list
~~~

- Enable more modules:
~~~
$ max modules enable docker_manager kubernetes_manager
~~~`,
	}

	dependencyMissingIssue = &Issue{
		id: DependencyMissingId,
		mdMsg: `
# Module dependency not found!

A module you enabled declares an external tool that is not on your
PATH. The module stays enabled and its commands stay mounted; they may
fail at runtime until the tool is installed.

## Things you can try:
- Install the missing tool with your package manager
- Check that its install location is on your PATH
- Disable the module if you do not need it:
~~~
$ max modules disable <module>
~~~`,
	}

	staleModuleReferenceIssue = &Issue{
		id: StaleModuleReferenceId,
		mdMsg: `
# Stale module reference!

Your modules file enables a module that this build of max no longer
ships. The entry was kept in the file but skipped during command
composition.

## Things you can try:
- Disable the stale entry to clean up the file:
~~~
$ max modules disable <module>
~~~

- Or upgrade to a build that still provides the module`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the maxcli configuration file.

## Configuration file locations:
- Linux: ~/.config/maxcli/config.cue
- macOS: ~/Library/Application Support/maxcli/config.cue
- Windows: %APPDATA%\maxcli\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/maxcli/config.cue
~~~

## Example configuration:
~~~cue
dependency_checks: true

ui: {
  color_scheme: "auto"
  verbose: false
}

coolify: {
  base_url: "https://coolify.example.com"
  token_env: "COOLIFY_API_TOKEN"
}
~~~`,
	}

	coolifyUnreachableIssue = &Issue{
		id: CoolifyUnreachableId,
		mdMsg: `
# Coolify instance unreachable!

The coolify_manager module could not reach your Coolify instance.

## Things you can try:
- Check the base_url in your config:
~~~cue
coolify: {
  base_url: "https://coolify.example.com"
}
~~~

- Verify the API token environment variable is set:
~~~
$ echo $COOLIFY_API_TOKEN
~~~

- Confirm the instance is up and reachable from this machine`,
	}

	issues = map[Id]*Issue{
		configCorruptIssue.Id():         configCorruptIssue,
		commandCollisionIssue.Id():      commandCollisionIssue,
		unknownModuleIssue.Id():         unknownModuleIssue,
		modulesConfigNotFoundIssue.Id(): modulesConfigNotFoundIssue,
		dependencyMissingIssue.Id():     dependencyMissingIssue,
		staleModuleReferenceIssue.Id():  staleModuleReferenceIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		coolifyUnreachableIssue.Id():    coolifyUnreachableIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
