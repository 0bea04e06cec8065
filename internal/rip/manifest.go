package rip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest written into the destination.
const ManifestFile = "xmodits-manifest.yaml"

// manifest is the YAML document written by ManifestExtractor.
type manifest struct {
	// Destination is the folder the run wrote into.
	Destination string `yaml:"destination"`

	// GeneratedAt is the UTC time the manifest was written.
	GeneratedAt string `yaml:"generatedAt"`

	// Modules lists every module in processing order.
	Modules []manifestEntry `yaml:"modules"`
}

type manifestEntry struct {
	Module `yaml:",inline"`

	// Folder is the directory the module's samples belong in.
	Folder string `yaml:"folder"`
}

// ManifestExtractor records each module and the folder assigned to it,
// then writes the list to ManifestFile in the destination.
type ManifestExtractor struct {
	entries []manifestEntry

	// now is stubbed in tests.
	now func() time.Time
}

// NewManifestExtractor creates an empty ManifestExtractor.
func NewManifestExtractor() *ManifestExtractor {
	return &ManifestExtractor{now: time.Now}
}

// Extract records m. The module file must still be readable.
func (e *ManifestExtractor) Extract(_ context.Context, m Module, dir string) error {
	f, err := os.Open(m.Path)
	if err != nil {
		return err
	}
	_ = f.Close()

	e.entries = append(e.entries, manifestEntry{Module: m, Folder: dir})
	return nil
}

// Finish writes the manifest into dest. Nothing is written when no module
// was recorded.
func (e *ManifestExtractor) Finish(dest string) error {
	if len(e.entries) == 0 {
		return nil
	}

	now := e.now
	if now == nil {
		now = time.Now
	}

	doc := manifest{
		Destination: dest,
		GeneratedAt: now().UTC().Format(time.RFC3339),
		Modules:     e.entries,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	header := []byte("# Generated by xmodits. Lists the modules ripped in the last run.\n")
	path := filepath.Join(dest, ManifestFile)
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}
