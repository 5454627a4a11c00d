package source

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sort"
)

// Manifest serves episodes already uploaded to the hosting platform. The
// platform's deploy step writes a JSON manifest mapping each filename to its
// hosted URL and byte size; the manifest is re-read on every call so a fresh
// deploy is picked up without a restart.
type Manifest struct {
	path   string
	logger *log.Logger
}

type manifestDoc struct {
	Assets map[string]manifestAsset `json:"assets"`
}

type manifestAsset struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// NewManifest creates a Manifest source backed by the given manifest file.
func NewManifest(path string, logger *log.Logger) *Manifest {
	if logger == nil {
		logger = log.Default()
	}
	return &Manifest{path: path, logger: logger}
}

// load reads the manifest, degrading to an empty one when the file is
// missing or broken. A broken deploy artifact should empty the feed, not
// break it.
func (m *Manifest) load() manifestDoc {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			m.logger.Printf("asset manifest read error for %s: %v", m.path, err)
		}
		return manifestDoc{}
	}

	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		m.logger.Printf("asset manifest parse error for %s: %v", m.path, err)
		return manifestDoc{}
	}
	return doc
}

// List returns the manifest's filenames, sorted by name.
func (m *Manifest) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := m.load()
	names := make([]string, 0, len(doc.Assets))
	for name := range doc.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Stat resolves a filename to its hosted asset. Entries without a URL are
// unusable and resolve as absent.
func (m *Manifest) Stat(ctx context.Context, filename string) (Asset, bool, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, false, err
	}

	asset, ok := m.load().Assets[filename]
	if !ok || asset.URL == "" {
		return Asset{}, false, nil
	}
	return Asset{Size: asset.Size, RemoteURL: asset.URL}, true, nil
}
