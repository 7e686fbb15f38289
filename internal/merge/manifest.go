package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

// Manifest lists fragments in merge order. Window and overlap given at the
// top level apply to every fragment that does not set its own.
//
//	window: 10m
//	overlap: 1m
//	fragments:
//	  - path: chunk_001_000-010min.srt
//	  - path: chunk_002_009-019min.srt
type Manifest struct {
	Window    time.Duration   `yaml:"window"`
	Overlap   time.Duration   `yaml:"overlap"`
	Fragments []ManifestEntry `yaml:"fragments"`
}

type ManifestEntry struct {
	Path    string         `yaml:"path"`
	Window  *time.Duration `yaml:"window"`
	Overlap *time.Duration `yaml:"overlap"`
}

// LoadManifest reads a YAML manifest. Relative fragment paths are resolved
// against the manifest's directory.
func LoadManifest(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	sources, err := manifest.Sources(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return sources, nil
}

// Sources resolves the manifest entries against baseDir.
func (m Manifest) Sources(baseDir string) ([]Source, error) {
	if len(m.Fragments) == 0 {
		return nil, errors.New("no fragments listed")
	}

	sources := make([]Source, 0, len(m.Fragments))
	for i, entry := range m.Fragments {
		if entry.Path == "" {
			return nil, fmt.Errorf("fragment %d: path is required", i)
		}

		win, overlap := m.Window, m.Overlap
		if entry.Window != nil {
			win = *entry.Window
		}
		if entry.Overlap != nil {
			overlap = *entry.Overlap
		}
		if win <= 0 {
			return nil, fmt.Errorf("fragment %d: window is required", i)
		}

		path := entry.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		sources = append(sources, Source{
			Path:    path,
			Window:  timecode.FromDuration(win),
			Overlap: timecode.FromDuration(overlap),
		})
	}
	return sources, nil
}
