package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/xmodits/internal/destination"
	"github.com/mmr-tortoise/xmodits/internal/model"
	"github.com/mmr-tortoise/xmodits/internal/platform"
)

// fakePlatform is a POSIX platform whose pause can be switched on and
// observed.
type fakePlatform struct {
	platform.POSIX
	pauses bool
	paused int
}

func (f *fakePlatform) PausesAtExit() bool { return f.pauses }

func (f *fakePlatform) Pause(w io.Writer, _ io.Reader) {
	f.paused++
	io.WriteString(w, "<pause>")
}

// fakeRipper records what it was handed.
type fakeRipper struct {
	called bool
	paths  []string
	dest   string
	err    error
}

func (r *fakeRipper) Rip(_ context.Context, args *model.Args, dest string) error {
	r.called = true
	r.paths = append([]string(nil), args.Paths...)
	r.dest = dest
	return r.err
}

// fakeInspector records what it was handed.
type fakeInspector struct {
	called bool
	paths  []string
	err    error
}

func (i *fakeInspector) Inspect(_ context.Context, args *model.Args) error {
	i.called = true
	i.paths = append([]string(nil), args.Paths...)
	return i.err
}

// testDispatcher bundles a Dispatcher with its fakes and output buffers.
type testDispatcher struct {
	*Dispatcher
	out, err  *bytes.Buffer
	platform  *fakePlatform
	ripper    *fakeRipper
	inspector *fakeInspector
}

// newTestDispatcher creates a Dispatcher in a fresh working directory.
func newTestDispatcher(t *testing.T, pauses bool) *testDispatcher {
	t.Helper()
	testChdir(t, t.TempDir())

	td := &testDispatcher{
		out:       &bytes.Buffer{},
		err:       &bytes.Buffer{},
		platform:  &fakePlatform{pauses: pauses},
		ripper:    &fakeRipper{},
		inspector: &fakeInspector{},
	}
	td.Dispatcher = &Dispatcher{
		Out:       td.out,
		Err:       td.err,
		In:        strings.NewReader("\n"),
		Platform:  td.platform,
		Resolver:  destination.NewResolver(td.platform),
		Ripper:    td.ripper,
		Inspector: td.inspector,
		Build:     BuildInfo(),
	}
	return td
}

// TestRun_Meta verifies metadata mode prints the build info and nothing
// else runs, not even destination resolution.
func TestRun_Meta(t *testing.T) {
	td := newTestDispatcher(t, true)

	args := &model.Args{ShowMeta: true, ShowInfo: true, Paths: []string{"a.mod", "out"}}
	require.NoError(t, td.Run(context.Background(), args))

	var want bytes.Buffer
	require.NoError(t, PrintMeta(&want))
	assert.Equal(t, want.String(), td.out.String())

	assert.False(t, td.ripper.called)
	assert.False(t, td.inspector.called)
	assert.Zero(t, td.platform.paused)
	assert.NoDirExists(t, "out")
	assert.Equal(t, []string{"a.mod", "out"}, args.Paths)
}

// TestRun_Info verifies info mode hands over every path untouched and
// never resolves or pauses.
func TestRun_Info(t *testing.T) {
	td := newTestDispatcher(t, true)

	args := &model.Args{ShowInfo: true, Paths: []string{"a.mod", "out"}}
	require.NoError(t, td.Run(context.Background(), args))

	assert.True(t, td.inspector.called)
	assert.Equal(t, []string{"a.mod", "out"}, td.inspector.paths)
	assert.False(t, td.ripper.called)
	assert.Zero(t, td.platform.paused)
	assert.NoDirExists(t, "out")
}

// TestRun_InfoError verifies an inspector failure is printed, not returned.
func TestRun_InfoError(t *testing.T) {
	td := newTestDispatcher(t, false)
	td.inspector.err = errors.New("cannot read module")

	require.NoError(t, td.Run(context.Background(), &model.Args{ShowInfo: true}))
	assert.Equal(t, "Error: cannot read module\n", td.err.String())
}

// TestRun_Extract covers the ["a.mod", "out/"] scenario end to end.
func TestRun_Extract(t *testing.T) {
	td := newTestDispatcher(t, false)
	require.NoError(t, os.WriteFile("a.mod", []byte("M.K."), 0o644))

	args := &model.Args{Paths: []string{"a.mod", "out/"}}
	require.NoError(t, td.Run(context.Background(), args))

	assert.True(t, td.ripper.called)
	assert.Equal(t, []string{"a.mod"}, td.ripper.paths)
	assert.Equal(t, "out/", td.ripper.dest)
	assert.DirExists(t, "out")
	assert.Empty(t, td.err.String())
}

// TestRun_ExtractToWorkingDir covers the ["a.mod", "b.mod"] scenario where
// the last argument is an existing file.
func TestRun_ExtractToWorkingDir(t *testing.T) {
	td := newTestDispatcher(t, false)
	require.NoError(t, os.WriteFile("b.mod", []byte("M.K."), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, td.Run(context.Background(), &model.Args{Paths: []string{"a.mod", "b.mod"}}))

	assert.Equal(t, []string{"a.mod", "b.mod"}, td.ripper.paths)
	assert.Equal(t, wd, td.ripper.dest)
}

// TestRun_ResolutionFailure verifies a destination failure is printed,
// the ripper is skipped, and the run still finishes without error.
func TestRun_ResolutionFailure(t *testing.T) {
	td := newTestDispatcher(t, true)

	args := &model.Args{Paths: []string{"a.mod", "missing/out"}}
	require.NoError(t, td.Run(context.Background(), args))

	assert.False(t, td.ripper.called)
	assert.True(t, strings.HasPrefix(td.err.String(), `Error: Could not create destination folder "missing/out": `))
	assert.Equal(t, 1, td.platform.paused, "the pause follows a reported failure too")
}

// TestRun_NoWorkingDir verifies the working-directory failure message.
func TestRun_NoWorkingDir(t *testing.T) {
	td := newTestDispatcher(t, false)
	td.Resolver.Getwd = func() (string, error) { return "", errors.New("removed") }

	require.NoError(t, td.Run(context.Background(), &model.Args{Paths: []string{"a.mod"}}))

	assert.False(t, td.ripper.called)
	assert.Equal(t, "xmodits needs a current working directory. (>_<)\n", td.err.String())
}

// TestRun_RipperError verifies collaborator failures are reported and do
// not change the outcome of Run.
func TestRun_RipperError(t *testing.T) {
	td := newTestDispatcher(t, false)
	td.ripper.err = errors.New("no tracker modules to rip")

	require.NoError(t, td.Run(context.Background(), &model.Args{}))
	assert.Equal(t, "Error: no tracker modules to rip\n", td.err.String())
}

// TestRun_Pause verifies the pause only happens on a pausing platform and
// only when not suppressed.
func TestRun_Pause(t *testing.T) {
	tests := []struct {
		name         string
		pauses       bool
		noExitPrompt bool
		want         int
	}{
		{name: "pausing platform", pauses: true, want: 1},
		{name: "suppressed", pauses: true, noExitPrompt: true, want: 0},
		{name: "non-pausing platform", pauses: false, want: 0},
		{name: "flag ignored on non-pausing platform", pauses: false, noExitPrompt: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := newTestDispatcher(t, tt.pauses)

			require.NoError(t, td.Run(context.Background(), &model.Args{NoExitPrompt: tt.noExitPrompt}))

			assert.Equal(t, tt.want, td.platform.paused)
			assert.True(t, td.ripper.called)
		})
	}
}
