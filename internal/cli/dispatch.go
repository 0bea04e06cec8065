// Package cli — dispatch.go implements the control flow of a single xmodits
// invocation once the command line has been parsed.
//
// The branches are evaluated in a fixed priority order:
//
//  1. --meta prints the build metadata and nothing else runs.
//  2. --info hands every path to the Inspector and stops.
//  3. Otherwise the output folder is resolved from the paths, and on
//     success the remaining paths are handed to the Ripper.
//  4. After an extraction run, on platforms that close the console when
//     the process exits, the run ends with a "Press Enter" pause unless
//     --no-exit-prompt is set.
//
// Failures in step 3 are printed to stderr and end the run with exit
// status 0. Any further failure signalling is up to the collaborators.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mmr-tortoise/xmodits/internal/buildinfo"
	"github.com/mmr-tortoise/xmodits/internal/destination"
	"github.com/mmr-tortoise/xmodits/internal/model"
	"github.com/mmr-tortoise/xmodits/internal/platform"
	"github.com/mmr-tortoise/xmodits/internal/rip"
)

// Dispatcher runs one invocation. All fields are required.
type Dispatcher struct {
	// Out receives normal output and the exit prompt.
	Out io.Writer

	// Err receives failure messages.
	Err io.Writer

	// In is read by the exit prompt.
	In io.Reader

	// Platform provides the exit prompt.
	Platform platform.Platform

	// Resolver picks the output folder.
	Resolver *destination.Resolver

	// Ripper performs the extraction.
	Ripper rip.Ripper

	// Inspector performs informational display.
	Inspector rip.Inspector

	// Build is printed in metadata mode.
	Build buildinfo.Info
}

// Run dispatches args. It only returns an error when writing the build
// metadata fails; every other failure is reported on Err.
func (d *Dispatcher) Run(ctx context.Context, args *model.Args) error {
	if args.ShowMeta {
		return buildinfo.Write(d.Out, d.Build)
	}

	if args.ShowInfo {
		if err := d.Inspector.Inspect(ctx, args); err != nil {
			fmt.Fprintf(d.Err, "Error: %v\n", err)
		}
		return nil
	}

	d.extract(ctx, args)

	if !args.NoExitPrompt && d.Platform.PausesAtExit() {
		d.Platform.Pause(d.Out, d.In)
	}
	return nil
}

// extract resolves the destination and hands the inputs to the Ripper.
func (d *Dispatcher) extract(ctx context.Context, args *model.Args) {
	dest, err := d.Resolver.Resolve(&args.Paths)
	if err != nil {
		// Both resolution errors are already phrased for the user.
		fmt.Fprintln(d.Err, err)
		return
	}

	VerboseLog("Destination: %s", dest)
	VerboseLog("Inputs: %v", args.Paths)

	if err := d.Ripper.Rip(ctx, args, dest); err != nil {
		fmt.Fprintf(d.Err, "Error: %v\n", err)
	}
}
