// Package cli implements the cobra-based command line of xmodits.
//
// xmodits has a single command:
//
//	xmodits [flags] <module or folder>... [destination]
//
// This file defines the root command, its flags, and the translation of
// errors into exit codes. The control flow after parsing lives in
// dispatch.go.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/xmodits/internal/config"
	"github.com/mmr-tortoise/xmodits/internal/destination"
	"github.com/mmr-tortoise/xmodits/internal/model"
	"github.com/mmr-tortoise/xmodits/internal/platform"
	"github.com/mmr-tortoise/xmodits/internal/rip"
)

// Global flag variables shared with the error and log helpers.
var (
	// jsonOutput controls whether errors and info output are formatted
	// as JSON.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package.
var (
	// Version is the semantic version of the binary (e.g., "0.12.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Options replaces the collaborators of the root command. Zero fields
// fall back to the real implementations.
type Options struct {
	// Platform defaults to platform.Native().
	Platform platform.Platform

	// Ripper defaults to a rip.Batch with a rip.ManifestExtractor.
	Ripper rip.Ripper

	// Inspector defaults to a rip.TextInspector.
	Inspector rip.Inspector

	// In defaults to os.Stdin.
	In io.Reader
}

// NewRootCommand creates the root cobra command wired to the real
// platform, filesystem and collaborators.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(Options{})
}

// NewRootCommandWithOptions creates the root cobra command with the given
// collaborators. Tests use it to observe dispatch without extracting.
func NewRootCommandWithOptions(opts Options) *cobra.Command {
	args := &model.Args{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "xmodits [flags] <module or folder>... [destination]",
		Short: "Rip samples from tracker modules",
		Long: `xmodits extracts the samples stored in tracker modules (IT, XM, S3M, MOD,
UMX, MPTM) and writes them out as standalone audio files.

The last argument is the destination folder unless it is an existing file
or the only argument. A missing destination folder is created; its parent
must already exist. Without a destination, samples are written to the
current working directory.

Examples:
  xmodits song.it
  xmodits song.it other.xm ~/samples
  xmodits -r ./modules ./ripped
  xmodits --info song.it`,

		Args: cobra.ArbitraryArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors itself.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, positional []string) error {
			// Metadata mode must not touch the filesystem, so the
			// defaults file is only read for the other modes.
			if !args.ShowMeta {
				if err := applyConfig(cmd, configPath); err != nil {
					return err
				}
			}
			args.JSON = jsonOutput
			args.Verbose = verbose

			d := newDispatcher(cmd, opts)
			args.Paths = d.Platform.ExpandArgs(positional)
			VerboseLog("Platform: %s", d.Platform.Name())

			return d.Run(cmd.Context(), args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&args.ShowInfo, "info", "i", false, "Show information about the modules instead of ripping")
	flags.BoolVar(&args.ShowMeta, "meta", false, "Print build metadata and exit")
	flags.BoolVar(&args.NoExitPrompt, "no-exit-prompt", false, "Do not wait for Enter before exiting (Windows only)")
	flags.BoolVarP(&args.Recursive, "recursive", "r", false, "Search folders for modules recursively")
	flags.BoolVarP(&args.SelfContained, "self-contained", "s", false, "Put each module's samples in its own folder")
	flags.StringVar(&configPath, "config", "", "Read default flag values from this JSONC file")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return rootCmd
}

// newDispatcher builds the Dispatcher for one run from opts, filling in the
// real implementations for anything not supplied.
func newDispatcher(cmd *cobra.Command, opts Options) *Dispatcher {
	p := opts.Platform
	if p == nil {
		p = platform.Native()
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	ripper := opts.Ripper
	if ripper == nil {
		ripper = rip.NewBatch(rip.NewManifestExtractor(), cmd.OutOrStdout(), VerboseLog)
	}
	inspector := opts.Inspector
	if inspector == nil {
		inspector = rip.NewInspector(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	return &Dispatcher{
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
		In:        in,
		Platform:  p,
		Resolver:  destination.NewResolver(p),
		Ripper:    ripper,
		Inspector: inspector,
		Build:     BuildInfo(),
	}
}

// applyConfig presets flags that were not given on the command line from
// the defaults file. An explicit --config file must exist; the per-user
// default file is optional.
func applyConfig(cmd *cobra.Command, path string) error {
	required := path != ""
	if !required {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			VerboseLog("No user config directory: %v", err)
			return nil
		}
	}

	defaults, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if defaults.Path != "" {
		VerboseLog("Loaded defaults from %s", defaults.Path)
	}

	for _, name := range defaults.Names() {
		if cmd.Flags().Changed(name) {
			continue
		}
		if err := cmd.Flags().Set(name, strconv.FormatBool(defaults.Flags[name])); err != nil {
			return model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to apply %q from %s", name, defaults.Path), err)
		}
	}
	return nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Only errors raised before dispatch reach this point (bad flags, an
// unreadable config file). CLIError types carry their own exit codes;
// other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
