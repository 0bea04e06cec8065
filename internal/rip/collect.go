package rip

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/xmodits/internal/model"
)

// Module is a single tracker module file selected for ripping.
type Module struct {
	// Path is the file path as given or as found while walking a folder.
	Path string `json:"path" yaml:"path"`

	// Name is the file name without its folder.
	Name string `json:"name" yaml:"name"`

	// Format is derived from the extension. Empty when a file was named
	// explicitly but its extension is not a known tracker format.
	Format model.TrackerFormat `json:"format" yaml:"format"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// FolderName is the sub-folder used for this module in self-contained
// mode: the file name with dots replaced by underscores, so "song.it"
// becomes "song_it" and never clashes with the module file itself.
func (m Module) FolderName() string {
	return strings.ReplaceAll(m.Name, ".", "_")
}

// Skipped records an input that contributed no modules.
type Skipped struct {
	Path string
	Err  error
}

// Collect expands the input paths into module files.
//
// Regular files are taken as given, whatever their extension. Folders
// contribute the files whose extension is a supported tracker format; with
// recursive set, sub-folders are walked too. Inputs that cannot be read
// are returned in skipped rather than aborting the collection. A file
// reached twice is only listed once.
func Collect(paths []string, recursive bool) (modules []Module, skipped []Skipped) {
	seen := make(map[string]bool)
	add := func(path string, info fs.FileInfo) {
		key := filepath.Clean(path)
		if seen[key] {
			return
		}
		seen[key] = true
		format, _ := model.FormatOf(path)
		modules = append(modules, Module{
			Path:   path,
			Name:   filepath.Base(path),
			Format: format,
			Size:   info.Size(),
		})
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}

		switch {
		case info.Mode().IsRegular():
			add(path, info)
		case info.IsDir():
			found, err := scanDir(path, recursive, add)
			if err != nil {
				skipped = append(skipped, Skipped{Path: path, Err: err})
			} else if found == 0 {
				skipped = append(skipped, Skipped{Path: path, Err: fmt.Errorf("no tracker modules found")})
			}
		default:
			skipped = append(skipped, Skipped{Path: path, Err: fmt.Errorf("not a regular file or folder")})
		}
	}
	return modules, skipped
}

// scanDir feeds the supported module files under dir to add and returns
// how many it found.
func scanDir(dir string, recursive bool, add func(string, fs.FileInfo)) (int, error) {
	found := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable sub-folders are skipped; an unreadable root is
			// reported to the caller.
			if path == dir {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := model.FormatOf(path); !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		add(path, info)
		found++
		return nil
	})
	return found, err
}
