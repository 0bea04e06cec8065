// Package config loads the user's default flag values for the xmodits CLI.
//
// Defaults live in a JSONC file (JSON with comments and trailing commas),
// by default at <user config dir>/xmodits/config.jsonc:
//
//	{
//	  // always pause on Windows unless told otherwise
//	  "noExitPrompt": true,
//	  "selfContained": true,
//	}
//
// Comments are stripped with github.com/tidwall/jsonc and individual keys
// are read with github.com/tidwall/gjson, so that a key that is absent
// leaves the corresponding flag at its built-in default. Flags given on the
// command line always win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/xmodits/internal/model"
)

// fileName is the defaults file name inside the xmodits config folder.
const fileName = "config.jsonc"

// keys maps JSON keys in the defaults file to the CLI flag they preset.
var keys = map[string]string{
	"recursive":     "recursive",
	"selfContained": "self-contained",
	"noExitPrompt":  "no-exit-prompt",
	"verbose":       "verbose",
}

// Defaults holds the flag values found in a defaults file, keyed by flag
// name. Only keys present in the file are included.
type Defaults struct {
	// Path is the file the values were read from. Empty when no file
	// was found.
	Path string

	// Flags maps a flag name (e.g. "no-exit-prompt") to its preset value.
	Flags map[string]bool
}

// Names returns the preset flag names in sorted order.
func (d Defaults) Names() []string {
	names := make([]string, 0, len(d.Flags))
	for name := range d.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPath returns the location of the per-user defaults file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "xmodits", fileName), nil
}

// Load reads the defaults file at path.
//
// A missing file yields empty Defaults unless required is true, which is
// the case when the user named the file explicitly with --config.
// Unreadable or malformed files are reported as a CLIError with
// ExitConfigError.
func Load(path string, required bool) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Defaults{}, nil
		}
		return Defaults{}, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	defaults, err := Parse(data)
	if err != nil {
		return Defaults{}, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	defaults.Path = path
	return defaults, nil
}

// Parse extracts flag defaults from JSONC data. Unknown keys are ignored;
// known keys must hold a boolean.
func Parse(data []byte) (Defaults, error) {
	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return Defaults{}, errors.New("not valid JSON")
	}

	root := gjson.ParseBytes(clean)
	if !root.IsObject() {
		return Defaults{}, errors.New("top level must be an object")
	}

	d := Defaults{Flags: make(map[string]bool)}
	for key, flag := range keys {
		v := root.Get(key)
		if !v.Exists() {
			continue
		}
		if !v.IsBool() {
			return Defaults{}, fmt.Errorf("%q must be true or false, got %s", key, v.Raw)
		}
		d.Flags[flag] = v.Bool()
	}
	return d, nil
}
