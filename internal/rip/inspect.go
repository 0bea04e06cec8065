package rip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/go-units"

	"github.com/mmr-tortoise/xmodits/internal/model"
)

// ModuleInfo is the informational view of one module.
type ModuleInfo struct {
	Module

	// HumanSize is Size rendered with binary units, e.g. "12.5KiB".
	HumanSize string `json:"humanSize"`
}

// Skip is the informational view of an input that named no module.
type Skip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// TextInspector is the default Inspector. It lists the modules named by
// the inputs with their format and size, as text or as JSON.
type TextInspector struct {
	Out io.Writer
	Err io.Writer
}

// NewInspector creates a TextInspector writing to out, with skipped inputs
// reported to errOut.
func NewInspector(out, errOut io.Writer) *TextInspector {
	return &TextInspector{Out: out, Err: errOut}
}

// Inspect describes every module named by args.Paths. Nothing is written
// to disk. Every path is treated as an input; no destination is consumed.
func (i *TextInspector) Inspect(_ context.Context, args *model.Args) error {
	modules, skipped := Collect(args.Paths, args.Recursive)

	infos := make([]ModuleInfo, 0, len(modules))
	for _, m := range modules {
		infos = append(infos, ModuleInfo{Module: m, HumanSize: units.BytesSize(float64(m.Size))})
	}
	skips := make([]Skip, 0, len(skipped))
	for _, s := range skipped {
		skips = append(skips, Skip{Path: s.Path, Reason: s.Err.Error()})
	}

	if args.JSON {
		return i.printJSON(infos, skips)
	}
	i.printText(infos, skips)
	return nil
}

// printJSON outputs the module list as structured JSON.
func (i *TextInspector) printJSON(infos []ModuleInfo, skips []Skip) error {
	result := struct {
		Modules []ModuleInfo `json:"modules"`
		Skipped []Skip       `json:"skipped"`
	}{Modules: infos, Skipped: skips}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(i.Out, string(data))
	return err
}

// printText outputs one block per module followed by a count.
func (i *TextInspector) printText(infos []ModuleInfo, skips []Skip) {
	for _, info := range infos {
		fmt.Fprintf(i.Out, "%s\n", info.Name)
		fmt.Fprintf(i.Out, "  Format: %s\n", formatLabel(info.Format))
		fmt.Fprintf(i.Out, "  Size:   %s\n", info.HumanSize)
		fmt.Fprintf(i.Out, "  Path:   %s\n", info.Path)
	}
	fmt.Fprintf(i.Out, "%d module(s)\n", len(infos))

	if i.Err == nil {
		return
	}
	for _, s := range skips {
		fmt.Fprintf(i.Err, "Skipping %s: %s\n", s.Path, s.Reason)
	}
}
