package cli

import (
	"io"

	"github.com/mmr-tortoise/xmodits/internal/buildinfo"
)

// metaFlag is the flag that prints build metadata.
const metaFlag = "--meta"

// IsMetaRequest reports whether the first raw command-line token (after
// the program name) is the metadata flag. main checks this before the
// command tree is built, so metadata can be printed even when the rest of
// the command line would not parse.
func IsMetaRequest(rawArgs []string) bool {
	return len(rawArgs) > 0 && rawArgs[0] == metaFlag
}

// BuildInfo returns the metadata for the running binary from the
// link-time version variables.
func BuildInfo() buildinfo.Info {
	return buildinfo.New(buildinfo.Vars{Version: Version, Commit: Commit, Date: Date})
}

// PrintMeta writes the build metadata to w. It produces the same bytes as
// running with a parsed --meta flag.
func PrintMeta(w io.Writer) error {
	return buildinfo.Write(w, BuildInfo())
}
