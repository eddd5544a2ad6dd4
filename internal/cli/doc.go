// Package cli wires together the Cobra command tree for the tagsum binary.
//
// The root command runs a tag-to-tag analysis; subcommands cover
// single-commit analysis (commit), configuration management (config), and
// version printing. Handlers map failures onto deterministic exit codes:
// 0 success, 2 usage error, 3 credential error, 4 runtime failure.
package cli
