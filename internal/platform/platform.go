package platform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// pausePrompt is printed before waiting for Enter at the end of a run.
const pausePrompt = "\nPress Enter to continue... "

// Platform abstracts the host behaviors that the resolver and dispatcher
// must not branch on directly.
type Platform interface {
	// Name identifies the implementation in verbose output.
	Name() string

	// ExpandTilde replaces a leading home-directory shorthand with the
	// home directory, where the shell has not already done so.
	ExpandTilde(path string) string

	// ExpandArgs expands wildcard patterns in positional arguments, where
	// the shell has not already done so.
	ExpandArgs(args []string) []string

	// PausesAtExit reports whether Pause does anything on this platform.
	PausesAtExit() bool

	// Pause prints a prompt to w and blocks until a line is read from r.
	Pause(w io.Writer, r io.Reader)
}

// Windows is the Platform for hosts whose shell expands neither "~" nor
// wildcards and whose console closes when the process exits.
type Windows struct {
	// HomeDir resolves the home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)
}

// Name returns "windows".
func (Windows) Name() string {
	return "windows"
}

// ExpandTilde rewrites "~", "~/rest" and "~\rest" relative to the home
// directory. Any other path, including "~user/rest", is returned unchanged,
// as is every path when the home directory cannot be resolved.
func (w Windows) ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}

	homeDir := w.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return path
	}

	rest := strings.TrimLeft(strings.TrimPrefix(path, "~"), `/\`)
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// ExpandArgs replaces each argument containing a wildcard with the paths it
// matches, in lexical order. Patterns that match nothing or are malformed
// are kept verbatim, mirroring a POSIX shell without nullglob.
func (Windows) ExpandArgs(args []string) []string {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			expanded = append(expanded, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			expanded = append(expanded, arg)
			continue
		}
		expanded = append(expanded, matches...)
	}
	return expanded
}

// PausesAtExit returns true.
func (Windows) PausesAtExit() bool {
	return true
}

// Pause prints the continue prompt and waits for one line of input.
// Read errors and EOF end the wait silently.
func (Windows) Pause(w io.Writer, r io.Reader) {
	fmt.Fprint(w, pausePrompt)
	flush(w)

	// bufio.Scanner handles both LF and CRLF line endings.
	scanner := bufio.NewScanner(r)
	scanner.Scan()
	flush(w)
}

// POSIX is the Platform for hosts whose shell performs "~" and wildcard
// expansion and whose terminal outlives the process.
type POSIX struct{}

// Name returns "posix".
func (POSIX) Name() string {
	return "posix"
}

// ExpandTilde returns path unchanged.
func (POSIX) ExpandTilde(path string) string {
	return path
}

// ExpandArgs returns args unchanged.
func (POSIX) ExpandArgs(args []string) []string {
	return args
}

// PausesAtExit returns false.
func (POSIX) PausesAtExit() bool {
	return false
}

// Pause does nothing.
func (POSIX) Pause(io.Writer, io.Reader) {}

// flush pushes buffered output to the terminal before blocking on input.
func flush(w io.Writer) {
	switch f := w.(type) {
	case interface{ Flush() error }:
		_ = f.Flush()
	case *os.File:
		// Sync fails on consoles and pipes; the write has already reached
		// the OS in that case.
		_ = f.Sync()
	}
}
