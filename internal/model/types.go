package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Args is the argument set for a single invocation.
//
// It is constructed once from the raw command-line tokens and owned by the
// dispatcher for the whole run. The destination resolver may remove the
// last element of Paths when it is consumed as the output folder, so Paths
// holds only input files and folders by the time the extraction
// collaborator sees it.
type Args struct {
	// Paths are the positional path arguments in command-line order.
	Paths []string `json:"paths"`

	// ShowInfo switches the run to informational display mode.
	ShowInfo bool `json:"showInfo"`

	// ShowMeta prints the compiled-in build metadata and stops.
	ShowMeta bool `json:"showMeta"`

	// NoExitPrompt suppresses the end-of-run pause on platforms that have one.
	NoExitPrompt bool `json:"noExitPrompt"`

	// Recursive makes folder inputs contribute modules from sub-folders too.
	Recursive bool `json:"recursive"`

	// SelfContained places each module's samples in its own sub-folder
	// of the destination.
	SelfContained bool `json:"selfContained"`

	// JSON selects machine-readable output for informational mode.
	JSON bool `json:"json"`

	// Verbose enables [verbose] trace lines on stderr.
	Verbose bool `json:"verbose"`
}

// TrackerFormat is a tracker module format, identified by file extension.
type TrackerFormat string

const (
	// FormatIT is Impulse Tracker.
	FormatIT TrackerFormat = "it"

	// FormatXM is FastTracker II Extended Module.
	FormatXM TrackerFormat = "xm"

	// FormatS3M is Scream Tracker 3.
	FormatS3M TrackerFormat = "s3m"

	// FormatMOD is the original Amiga ProTracker family.
	FormatMOD TrackerFormat = "mod"

	// FormatUMX is an Unreal package that wraps one of the formats above.
	FormatUMX TrackerFormat = "umx"

	// FormatMPTM is OpenMPT's extended Impulse Tracker format.
	FormatMPTM TrackerFormat = "mptm"
)

// SupportedFormats lists every format the ripper accepts from folder inputs.
var SupportedFormats = []TrackerFormat{FormatIT, FormatXM, FormatS3M, FormatMOD, FormatUMX, FormatMPTM}

// String returns the string representation of TrackerFormat.
func (f TrackerFormat) String() string {
	return string(f)
}

// IsValid checks whether the TrackerFormat value is one of the
// supported formats.
func (f TrackerFormat) IsValid() bool {
	for _, s := range SupportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

// FormatOf returns the tracker format implied by a file's extension.
// The comparison is case-insensitive; ok is false for unknown extensions.
func FormatOf(path string) (TrackerFormat, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	f := TrackerFormat(strings.ToLower(ext))
	if !f.IsValid() {
		return "", false
	}
	return f, true
}

// ErrNoWorkingDir is returned when the process has no usable current
// working directory to fall back on as the output destination.
var ErrNoWorkingDir = errors.New("xmodits needs a current working directory. (>_<)")

// DestinationError reports that the output folder did not exist and could
// not be created.
type DestinationError struct {
	// Path is the destination folder after home-directory expansion.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

// Error formats the failure as the one-line message shown to the user.
func (e *DestinationError) Error() string {
	return fmt.Sprintf("Error: Could not create destination folder \"%s\": %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *DestinationError) Unwrap() error {
	return e.Err
}

// ExitCode defines the process exit codes used by the CLI.
//
// The invocation layer itself always finishes with ExitSuccess, including
// after a reported destination failure. Non-zero codes are only produced
// for errors raised before dispatch, such as an unreadable config file or
// malformed flags.
type ExitCode int

const (
	// ExitSuccess indicates the command completed.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the defaults file could not be read or parsed.
	ExitConfigError ExitCode = 2
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
