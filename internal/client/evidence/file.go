package evidence

import (
	"context"
	"io"

	"github.com/dmitrijs2005/traffichub/internal/filex"
)

// FileSink writes evidence into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates dir when needed.
func NewFileSink(dir string) (*FileSink, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileSink{dir: abs}, nil
}

func (s *FileSink) Dir() string { return s.dir }

func (s *FileSink) Store(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, _, err := filex.WriteAtomic(s.dir, name, r)
	return p, err
}
