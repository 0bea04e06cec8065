// Package buildinfo holds the compiled-in build metadata printed by
// "xmodits --meta".
//
// Version, commit and build date are injected into package main via
// ldflags at release time and passed to New. When a binary is built with
// plain "go build" those values keep their development defaults, and the
// VCS stamp recorded by the Go toolchain is used instead where available.
package buildinfo

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Static project metadata.
const (
	name       = "xmodits"
	authors    = "B0ney"
	license    = "LGPL-3.0-only"
	repository = "https://github.com/B0ney/xmodits"
)

// Vars are the values injected at link time with
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
type Vars struct {
	Version string
	Commit  string
	Date    string
}

// Info is the immutable build metadata of the running binary.
// It is a value type; copies cannot affect each other.
type Info struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Authors    string `json:"authors"`
	License    string `json:"license"`
	Repository string `json:"repository"`
	Commit     string `json:"commit"`
	Target     string `json:"target"`
	GoVersion  string `json:"goVersion"`
	Arch       string `json:"arch"`
	BuildTime  string `json:"buildTime"`
}

// New assembles Info from link-time vars and the toolchain's own build
// information.
func New(v Vars) Info {
	bi, _ := debug.ReadBuildInfo()
	return build(v, bi)
}

// build is New with the build information passed in, for tests.
func build(v Vars, bi *debug.BuildInfo) Info {
	info := Info{
		Name:       name,
		Version:    orDefault(v.Version, "dev"),
		Authors:    authors,
		License:    license,
		Repository: repository,
		Commit:     unset(v.Commit),
		Target:     runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion:  runtime.Version(),
		Arch:       runtime.GOARCH,
		BuildTime:  unset(v.Date),
	}

	if bi == nil {
		info.Commit = orDefault(info.Commit, "none")
		info.BuildTime = orDefault(info.BuildTime, "unknown")
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}

	info.Commit = orDefault(info.Commit, "none")
	info.BuildTime = orDefault(info.BuildTime, "unknown")
	return info
}

// Write prints the metadata block. Every entry point that shows build
// metadata goes through here so the output is identical.
func Write(w io.Writer, i Info) error {
	_, err := fmt.Fprintf(w, `Binary name: %s
Version: %s
Author(s): %s
License: %s
Repository: %s
Commit Hash: %s
Build Target: %s
Go Version: %s
Target Architecture: %s
Build Time: %s
`,
		i.Name,
		i.Version,
		i.Authors,
		i.License,
		i.Repository,
		i.Commit,
		i.Target,
		i.GoVersion,
		i.Arch,
		i.BuildTime,
	)
	return err
}

// unset maps the ldflags placeholders ("none", "unknown") to "" so the
// toolchain stamp can fill them in.
func unset(s string) string {
	if s == "none" || s == "unknown" {
		return ""
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
