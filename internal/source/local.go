package source

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
)

// Local serves episodes from a flat directory on disk.
type Local struct {
	root   string
	logger *log.Logger
}

// NewLocal creates a Local source rooted at the given directory.
func NewLocal(root string, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.Default()
	}
	return &Local{root: filepath.Clean(root), logger: logger}
}

// List returns the regular files directly under the root, sorted by name.
func (l *Local) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Stat resolves a filename to its on-disk asset. Names carrying path
// separators never resolve; the feed only knows flat filenames.
func (l *Local) Stat(ctx context.Context, filename string) (Asset, bool, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, false, err
	}

	if filename == "" || filename != filepath.Base(filename) {
		return Asset{}, false, nil
	}

	path := filepath.Join(l.root, filename)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Asset{}, false, nil
		}
		return Asset{}, false, err
	}
	if info.IsDir() {
		return Asset{}, false, nil
	}

	return Asset{Size: info.Size(), LocalPath: path}, true, nil
}

// ProbeDuration walks the mp3 frames of a file and returns whole seconds.
// Used when the metadata document carries no duration for an .mp3 episode.
func (l *Local) ProbeDuration(filename string) (int, error) {
	f, err := os.Open(filepath.Join(l.root, filename))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total float64

	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration().Seconds()
	}

	return int(total + 0.5), nil
}

// sniffTypes maps extensions to the container types an identification of the
// file's leading bytes may legitimately report.
var sniffTypes = map[string][]tag.FileType{
	".mp3":  {tag.MP3},
	".m4a":  {tag.M4A, tag.M4B, tag.M4P, tag.ALAC},
	".flac": {tag.FLAC},
	".ogg":  {tag.OGG},
}

// VerifyFormat compares the declared extension against the container
// identified from the file's content. A mismatch is only worth a log line:
// the declared extension still decides the served content type, and files
// whose format cannot be identified pass silently.
func (l *Local) VerifyFormat(filename string) {
	expected, ok := sniffTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return
	}

	f, err := os.Open(filepath.Join(l.root, filename))
	if err != nil {
		return
	}
	defer f.Close()

	_, fileType, err := tag.Identify(f)
	if err != nil || fileType == tag.UnknownFileType {
		return
	}

	for _, t := range expected {
		if fileType == t {
			return
		}
	}
	l.logger.Printf("warning: %s identifies as %s, not matching its extension", filename, fileType)
}
