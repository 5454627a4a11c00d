package library

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dripcast/internal/metadata"
	"dripcast/internal/models"
	"dripcast/internal/source"
)

var (
	// ErrNotFound covers both missing and not-yet-released episodes, so the
	// two are indistinguishable to callers.
	ErrNotFound = errors.New("episode not found")
	// ErrUnsupported marks filenames outside the supported audio formats.
	ErrUnsupported = errors.New("unsupported audio format")
)

// Library assembles the released, sorted episode collection. Nothing is
// cached: the metadata document and the source listing are re-read on every
// call, so concurrent requests share no mutable state.
type Library struct {
	source       source.Source
	metadataPath string
	logger       *log.Logger
	now          func() time.Time
}

// New creates a Library over the given source and metadata document path.
func New(src source.Source, metadataPath string, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.Default()
	}
	return &Library{source: src, metadataPath: metadataPath, logger: logger, now: time.Now}
}

// Snapshot resolves every candidate file against the current metadata
// document and returns the podcast block plus the episodes released as of
// now, newest first. Files with unsupported extensions, unreleased files,
// and files without a usable size/location are left out without error.
func (l *Library) Snapshot(ctx context.Context) (models.Podcast, []models.Episode, error) {
	doc := metadata.Load(l.metadataPath, l.logger)

	names, err := l.source.List(ctx)
	if err != nil {
		return models.Podcast{}, nil, err
	}

	now := l.now()
	var episodes []models.Episode
	for _, name := range names {
		if !metadata.IsSupported(name) {
			continue
		}

		ep := metadata.Resolve(name, doc)
		if !metadata.Released(ep.ReleaseDate, now) {
			continue
		}

		asset, ok, err := l.source.Stat(ctx, name)
		if err != nil {
			l.logger.Printf("stat error for %s: %v", name, err)
			continue
		}
		if !ok || (asset.LocalPath == "" && asset.RemoteURL == "") {
			continue
		}

		ep.MIMEType, _ = metadata.MIMEType(name)
		ep.SizeBytes = asset.Size
		ep.URL = asset.RemoteURL
		if ep.DurationSeconds == nil {
			ep.DurationSeconds = l.probeDuration(name, asset)
		}

		episodes = append(episodes, ep)
	}

	sortEpisodes(episodes)
	return metadata.ResolvePodcast(doc), episodes, nil
}

// Lookup resolves a single filename for streaming. Unreleased episodes
// report ErrNotFound exactly like missing ones.
func (l *Library) Lookup(ctx context.Context, filename string) (source.Asset, error) {
	if !metadata.IsSupported(filename) {
		return source.Asset{}, ErrUnsupported
	}

	release, _ := metadata.ParseFilename(filename)
	if !metadata.Released(release, l.now()) {
		return source.Asset{}, ErrNotFound
	}

	asset, ok, err := l.source.Stat(ctx, filename)
	if err != nil {
		return source.Asset{}, err
	}
	if !ok || (asset.LocalPath == "" && asset.RemoteURL == "") {
		return source.Asset{}, ErrNotFound
	}

	if checker, ok := l.source.(formatChecker); ok && asset.LocalPath != "" {
		checker.VerifyFormat(filename)
	}
	return asset, nil
}

// probeDuration fills in a duration for local mp3 files when the source can
// compute one. Failures just leave the duration unset.
func (l *Library) probeDuration(name string, asset source.Asset) *int {
	prober, ok := l.source.(durationProber)
	if !ok || asset.LocalPath == "" || !strings.EqualFold(filepath.Ext(name), ".mp3") {
		return nil
	}

	seconds, err := prober.ProbeDuration(name)
	if err != nil || seconds <= 0 {
		return nil
	}
	return &seconds
}

type durationProber interface {
	ProbeDuration(filename string) (int, error)
}

type formatChecker interface {
	VerifyFormat(filename string)
}

// sortEpisodes orders newest release first; files without a release date
// count as the oldest possible. Equal dates fall back to ascending filename
// so listings stay deterministic.
func sortEpisodes(episodes []models.Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		di, dj := episodes[i].ReleaseDate, episodes[j].ReleaseDate
		switch {
		case di == nil && dj == nil:
			return episodes[i].Filename < episodes[j].Filename
		case di == nil:
			return false
		case dj == nil:
			return true
		case di.Equal(*dj):
			return episodes[i].Filename < episodes[j].Filename
		default:
			return di.After(*dj)
		}
	})
}
