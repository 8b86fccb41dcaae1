// Package cli implements the docsite command: serve, coverage, preview and
// publish. Each subcommand parses its flags into a config struct and runs
// against an already loaded *config.Config, so tests can drive them without
// touching the process environment.
package cli
