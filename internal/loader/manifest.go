package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
)

// ManifestName is the well-known manifest filename inside a data
// directory. The manifest never lists itself.
const ManifestName = "manifest.json"

// manifestNote labels generated manifests.
const manifestNote = "Auto-generated file list for Clinical Trials Dashboard"

// Manifest lists the study documents a data source serves.
type Manifest struct {
	Files       []string `json:"files"`
	TotalFiles  int      `json:"total_files"`
	GeneratedAt string   `json:"generated_at"`
	Note        string   `json:"note"`
}

// Generate scans dir for *.json study documents and builds their
// manifest. Files that do not parse as JSON are returned separately so the
// caller can refuse to publish a broken manifest.
func Generate(dir string) (Manifest, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Manifest{}, nil, eris.Wrap(err, "manifest: read data dir")
	}

	var files, invalid []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || name == ManifestName {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || !json.Valid(raw) {
			invalid = append(invalid, name)
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	sort.Strings(invalid)

	return Manifest{
		Files:       files,
		TotalFiles:  len(files),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Note:        manifestNote,
	}, invalid, nil
}

// WriteManifest generates and writes dir's manifest.json. It fails when
// any study document is not valid JSON, naming the offenders.
func WriteManifest(dir string) (Manifest, error) {
	m, invalid, err := Generate(dir)
	if err != nil {
		return Manifest{}, err
	}
	if len(invalid) > 0 {
		return Manifest{}, eris.Errorf("manifest: invalid JSON files: %v", invalid)
	}

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, eris.Wrap(err, "manifest: marshal")
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), raw, 0o644); err != nil {
		return Manifest{}, eris.Wrap(err, "manifest: write")
	}
	return m, nil
}
