package source

import "context"

// Asset locates one episode's bytes: a size plus either a path on local disk
// (streamed by this process) or a URL on the hosting platform.
type Asset struct {
	Size      int64
	LocalPath string
	RemoteURL string
}

// Source enumerates candidate episode filenames and locates their bytes.
// Implementations hold no state between calls; every request re-reads the
// underlying storage.
type Source interface {
	List(ctx context.Context) ([]string, error)
	Stat(ctx context.Context, filename string) (Asset, bool, error)
}
