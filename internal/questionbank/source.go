package questionbank

import (
	"context"
	"os"
	"path/filepath"
)

// Source supplies raw question documents by file name. The bank does not care
// whether documents come from disk, an HTTP cache, or a test fixture.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads question files from a directory on disk.
type DirSource struct {
	Dir string
}

func (s DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.Dir, name))
}
