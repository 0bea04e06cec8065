// Package model defines the domain types and value objects for the
// xmodits CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity is Args, the argument set built once per process from
// the command line and handed from the dispatcher to the destination
// resolver and the extraction collaborators. Nothing here is persisted
// across runs.
//
// The package also defines exit codes (ExitCode), the destination resolution
// errors (ErrNoWorkingDir, DestinationError) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
