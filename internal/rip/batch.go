package rip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/xmodits/internal/model"
)

// Ripper extracts samples from the input modules into dest.
type Ripper interface {
	Rip(ctx context.Context, args *model.Args, dest string) error
}

// Inspector displays information about the input modules.
type Inspector interface {
	Inspect(ctx context.Context, args *model.Args) error
}

// Extractor writes the samples of one module into dir.
type Extractor interface {
	Extract(ctx context.Context, m Module, dir string) error
}

// Finisher is implemented by extractors that write something once all
// modules of a run have been processed.
type Finisher interface {
	Finish(dest string) error
}

// ErrNoModules is returned when none of the inputs named a module.
var ErrNoModules = errors.New("no tracker modules to rip")

// Batch is the default Ripper. It processes modules one at a time in input
// order and keeps going after a failed module.
type Batch struct {
	// Extractor handles each module.
	Extractor Extractor

	// Out receives progress lines. Defaults to io.Discard.
	Out io.Writer

	// Logf receives verbose trace lines. May be nil.
	Logf func(format string, args ...interface{})
}

// NewBatch creates a Batch that reports progress to out.
func NewBatch(ex Extractor, out io.Writer, logf func(string, ...interface{})) *Batch {
	return &Batch{Extractor: ex, Out: out, Logf: logf}
}

// Rip collects the modules named by args.Paths and extracts each into
// dest, or into dest/<FolderName> when args.SelfContained is set.
//
// The returned error joins every per-module failure. Inputs that named no
// module are reported on Out but do not fail the run unless nothing at all
// was found.
func (b *Batch) Rip(ctx context.Context, args *model.Args, dest string) error {
	modules, skipped := Collect(args.Paths, args.Recursive)
	for _, s := range skipped {
		b.printf("Skipping %s: %v\n", s.Path, s.Err)
	}
	if len(modules) == 0 {
		return ErrNoModules
	}

	b.logf("Ripping %d module(s) into %s", len(modules), dest)

	var errs []error
	ripped := 0
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		dir, err := b.targetDir(m, dest, args.SelfContained)
		if err == nil {
			b.logf("Extracting %s (%s, %d bytes) into %s", m.Path, formatLabel(m.Format), m.Size, dir)
			err = b.Extractor.Extract(ctx, m, dir)
		}
		if err != nil {
			b.printf("Error ripping %s: %v\n", m.Path, err)
			errs = append(errs, fmt.Errorf("%s: %w", m.Path, err))
			continue
		}
		ripped++
	}

	if f, ok := b.Extractor.(Finisher); ok {
		if err := f.Finish(dest); err != nil {
			errs = append(errs, err)
		}
	}

	b.printf("Ripped %d of %d module(s) to %s\n", ripped, len(modules), dest)
	return errors.Join(errs...)
}

// targetDir returns the folder for m, creating the per-module folder in
// self-contained mode.
func (b *Batch) targetDir(m Module, dest string, selfContained bool) (string, error) {
	if !selfContained {
		return dest, nil
	}
	dir := filepath.Join(dest, m.FolderName())
	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("failed to create module folder: %w", err)
	}
	return dir, nil
}

func (b *Batch) printf(format string, args ...interface{}) {
	if b.Out == nil {
		return
	}
	fmt.Fprintf(b.Out, format, args...)
}

func (b *Batch) logf(format string, args ...interface{}) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

// formatLabel renders a format for display, "unknown" when empty.
func formatLabel(f model.TrackerFormat) string {
	if f == "" {
		return "unknown"
	}
	return f.String()
}
