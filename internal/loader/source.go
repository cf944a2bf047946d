// Package loader fetches study documents from a data source and turns
// them into the canonical record set. Individual failures degrade to a
// smaller set; only total unavailability is fatal.
package loader

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Source supplies a manifest and the study documents it lists. A name
// handed to Record always comes from the manifest.
type Source interface {
	// Manifest fetches the source's file listing.
	Manifest(ctx context.Context) (Manifest, error)

	// Record opens the named study document for reading.
	Record(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSSource serves study documents from a local directory.
type FSSource struct {
	dir string
}

// NewFSSource creates a source over the given data directory.
func NewFSSource(dir string) *FSSource {
	return &FSSource{dir: dir}
}

// Manifest reads the directory's manifest.json.
func (s *FSSource) Manifest(_ context.Context) (Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, ManifestName))
	if err != nil {
		return Manifest{}, eris.Wrap(err, "fs source: read manifest")
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, eris.Wrap(err, "fs source: decode manifest")
	}
	return m, nil
}

// Record opens one study document.
func (s *FSSource) Record(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, eris.Wrapf(err, "fs source: open %s", name)
	}
	return f, nil
}
