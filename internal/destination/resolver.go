// Package destination decides where extracted samples are written.
//
// The positional arguments of an extraction run are a list of inputs with
// an optional trailing output folder. The last argument is taken as the
// output folder unless it names an existing regular file or is the only
// argument; in those cases every argument is an input and the samples go
// to the current working directory.
//
// A destination that does not exist yet is created, one level deep. Missing
// parent folders are never created.
package destination

import (
	"os"

	"github.com/mmr-tortoise/xmodits/internal/model"
	"github.com/mmr-tortoise/xmodits/internal/platform"
)

// dirPerm is the permission used for a newly created destination folder,
// before the process umask is applied.
const dirPerm os.FileMode = 0o755

// Resolver resolves the output folder from a list of path arguments.
//
// The zero value is usable and uses the real working directory and
// filesystem with the POSIX platform. Tests and callers that need to
// observe failures inject Getwd and Mkdir.
type Resolver struct {
	// Platform supplies home-directory expansion for the output folder.
	Platform platform.Platform

	// Getwd returns the current working directory. Defaults to os.Getwd.
	Getwd func() (string, error)

	// Mkdir creates a single directory. Defaults to os.Mkdir.
	Mkdir func(name string, perm os.FileMode) error
}

// NewResolver creates a Resolver for the given platform using the real
// working directory and filesystem.
func NewResolver(p platform.Platform) *Resolver {
	return &Resolver{Platform: p}
}

// Resolve is shorthand for NewResolver(p).Resolve(paths).
func Resolve(paths *[]string, p platform.Platform) (string, error) {
	return NewResolver(p).Resolve(paths)
}

// Resolve returns the output folder for an extraction run.
//
// When the last element of *paths is used as the output folder it is
// removed from the slice, so that *paths holds only inputs afterwards.
// Otherwise *paths is left untouched and the current working directory is
// returned. At most one directory is created.
//
// Errors are ErrNoWorkingDir when the fallback is needed but the working
// directory is unavailable, and *model.DestinationError when the output
// folder cannot be created.
func (r *Resolver) Resolve(paths *[]string) (string, error) {
	list := *paths
	if len(list) == 0 {
		return r.cwd()
	}

	// Inspect the candidate before consuming it. A file, or a lone
	// argument, means there is no explicit destination.
	last := list[len(list)-1]
	if isFile(last) || len(list) <= 1 {
		return r.cwd()
	}

	*paths = list[:len(list)-1]
	folder := r.platform().ExpandTilde(last)

	if !isDir(folder) {
		if err := r.mkdir(folder); err != nil {
			return "", &model.DestinationError{Path: folder, Err: err}
		}
	}

	return folder, nil
}

// cwd returns the current working directory as the fallback destination.
func (r *Resolver) cwd() (string, error) {
	getwd := r.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil {
		return "", model.ErrNoWorkingDir
	}
	return dir, nil
}

func (r *Resolver) mkdir(dir string) error {
	mkdir := r.Mkdir
	if mkdir == nil {
		mkdir = os.Mkdir
	}
	return mkdir(dir, dirPerm)
}

func (r *Resolver) platform() platform.Platform {
	if r.Platform == nil {
		return platform.POSIX{}
	}
	return r.Platform
}

// isFile reports whether path names an existing regular file, following
// symlinks. Stat errors count as "not a file".
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isDir reports whether path names an existing directory, following
// symlinks.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
