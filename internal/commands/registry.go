// Package commands provides a central registry of cmdref CLI commands.
// The registry is the single source of truth for command help text, args
// and flags; the cli package builds its Cobra commands from it.
package commands

// Meta defines metadata for a CLI command.
type Meta struct {
	Name        string     // Command path with "_" for spaces (e.g., "config_init")
	Description string     // Short description
	LongDesc    string     // Long description (for --help)
	Args        []ArgMeta  // Positional arguments
	Flags       []FlagMeta // Command flags
	Examples    []string   // Usage examples
	Writes      bool       // Command writes files
}

// ArgMeta defines a positional argument.
type ArgMeta struct {
	Name        string   // Argument name
	Description string   // Description
	Required    bool     // Is this argument required?
	Variadic    bool     // Accepts any number of values
	Completions []string // Static completions (if any)
	DynamicComp string   // Dynamic completion type: "commands", "files"
}

// FlagMeta defines a command flag.
type FlagMeta struct {
	Name        string   // Flag name (e.g., "to", "format")
	Short       string   // Short flag (e.g., "o" for -o)
	Description string   // Description
	Type        FlagType // Type of flag
	Default     string   // Default value
	Examples    []string // Example values
}

// FlagType represents the type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
	FlagTypeInt    FlagType = "int"
)

// Dynamic completion kinds.
const (
	CompleteCommands = "commands"
	CompleteFiles    = "files"
)

// Registry holds all registered commands.
var Registry = map[string]Meta{
	"show": {
		Name:        "show",
		Description: "Show a command's hex code, description and parameters",
		LongDesc: `Resolves a command from the catalog and prints its hex code, description
and parameters. Enumerated parameters are expanded to their value labels.

The command name is matched exactly and is case-sensitive. With no argument,
you are prompted for a name. Exits with status 1 when the command does not
exist.

Running cmdref with a command name and no subcommand is the same as show.`,
		Args: []ArgMeta{
			{Name: "command", Description: "Command name (e.g., CMD_SET_MODE)", DynamicComp: CompleteCommands},
		},
		Flags: []FlagMeta{
			{Name: "markdown", Description: "Render the reference page as markdown", Type: FlagTypeBool},
			{Name: "hints", Description: "Show entry hints for non-enum parameters", Type: FlagTypeBool},
		},
		Examples: []string{
			"cmdref CMD_SET_MODE",
			"cmdref show CMD_ARM_SYSTEM --markdown",
			"cmdref show CMD_SET_MODE --json",
		},
	},
	"search": {
		Name:        "search",
		Description: "Find commands by name or description",
		LongDesc: `Lists commands whose name or description contains the query,
ignoring case. Results keep catalog order.`,
		Args: []ArgMeta{
			{Name: "query", Description: "Text to look for", Required: true},
		},
		Examples: []string{
			"cmdref search power",
			"cmdref search \"safe mode\" --json",
		},
	},
	"list": {
		Name:        "list",
		Description: "List every command in the catalog",
		Examples: []string{
			"cmdref list",
			"cmdref list --json",
		},
	},
	"browse": {
		Name:        "browse",
		Description: "Browse commands interactively",
		LongDesc: `Opens a terminal browser with a search box, the matching commands and
the details of the highlighted command.`,
		Args: []ArgMeta{
			{Name: "query", Description: "Initial search text"},
		},
		Examples: []string{
			"cmdref browse",
			"cmdref browse payload",
		},
	},
	"export": {
		Name:        "export",
		Description: "Write reference pages for commands",
		LongDesc: `Writes one markdown or HTML page per command, plus an index page.
With no command names, every command in the catalog is exported.`,
		Args: []ArgMeta{
			{Name: "command", Description: "Commands to export", Variadic: true, DynamicComp: CompleteCommands},
		},
		Flags: []FlagMeta{
			{Name: "to", Short: "o", Description: "Output directory", Type: FlagTypeString, Default: "cmdref-docs"},
			{Name: "as", Description: "Page format: md or html", Type: FlagTypeString, Default: "md", Examples: []string{"md", "html"}},
		},
		Examples: []string{
			"cmdref export --to docs",
			"cmdref export CMD_SET_MODE CMD_ARM_SYSTEM --as html",
		},
		Writes: true,
	},
	"convert": {
		Name:        "convert",
		Description: "Rewrite the catalog in another storage format",
		LongDesc: `Loads the catalog and writes it to a new location. The target format is
taken from --to-format, or detected from the target path: .db/.sqlite for
SQLite, .yaml/.yml for YAML, anything else is a CSV directory.`,
		Flags: []FlagMeta{
			{Name: "to", Short: "o", Description: "Target path", Type: FlagTypeString},
			{Name: "to-format", Description: "Target format: csv, yaml or sqlite", Type: FlagTypeString, Default: "auto"},
		},
		Examples: []string{
			"cmdref convert --to catalog.db",
			"cmdref --data catalog.db convert --to ./csv --to-format csv",
		},
		Writes: true,
	},
	"sample": {
		Name:        "sample",
		Description: "Write the sample satellite command catalog",
		LongDesc: `Writes a small satellite command catalog (14 commands) that exercises
enumerated, numeric and boolean parameters. Useful for trying cmdref out.`,
		Flags: []FlagMeta{
			{Name: "to", Short: "o", Description: "Target path (defaults to --data)", Type: FlagTypeString},
			{Name: "to-format", Description: "Target format: csv, yaml or sqlite", Type: FlagTypeString, Default: "auto"},
		},
		Examples: []string{
			"cmdref sample",
			"cmdref sample --to catalog.yaml",
		},
		Writes: true,
	},
	"config": {
		Name:        "config",
		Description: "Manage the cmdref config file",
	},
	"config_init": {
		Name:        "config_init",
		Description: "Create the config file",
		LongDesc: `Creates the config file. With no flags a commented template is written,
and an existing file is left alone. With the global --data or --format flags
the given settings are saved into the file.`,
		Examples: []string{
			"cmdref config init",
			"cmdref config init --data ~/catalogs/sat.db",
		},
		Writes: true,
	},
	"config_path": {
		Name:        "config_path",
		Description: "Print the config file path",
	},
	"version": {
		Name:        "version",
		Description: "Print version information",
	},
}
