// Package main is the entry point for the xmodits CLI.
//
// It delegates all functionality to the internal/cli package, which
// defines the cobra command and the dispatch logic.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process:
//
//	go build -ldflags "-X main.version=0.12.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%FT%TZ)" ./cmd/xmodits
//
// During development they default to "dev", "none", and "unknown", and the
// VCS stamp recorded by the Go toolchain is shown instead where available.
package main

import (
	"os"

	"github.com/mmr-tortoise/xmodits/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// "--meta" as the very first token is honored before the command line
	// is parsed, so it works even alongside flags this build rejects.
	if cli.IsMetaRequest(os.Args[1:]) {
		_ = cli.PrintMeta(os.Stdout)
		return
	}

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
