// Package evidence exports violation evidence images fetched from the API to
// a local directory or an S3 compatible bucket.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/common"
)

// Sink stores one evidence file and returns where it ended up.
type Sink interface {
	Store(ctx context.Context, name string, r io.Reader) (string, error)
}

// Source is the part of the API client the exporter needs.
type Source interface {
	FetchEvidence(ctx context.Context, name string) (io.ReadCloser, error)
}

// ErrInvalidName is returned for names that do not denote a single file.
var ErrInvalidName = errors.New("invalid evidence name")

// Export downloads evidence name from src and stores it in sink.
func Export(ctx context.Context, src Source, sink Sink, name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}

	rc, err := src.FetchEvidence(ctx, clean)
	if err != nil {
		return "", fmt.Errorf("fetch evidence %s: %w", clean, err)
	}
	defer rc.Close()

	loc, err := sink.Store(ctx, clean, rc)
	if err != nil {
		return "", fmt.Errorf("store evidence %s: %w", clean, err)
	}
	return loc, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || base != name || base == "." || base == ".." || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidName, name, common.ErrorIncorrectInput)
	}
	return base, nil
}

// NewSink returns an S3Sink when o names a bucket and a FileSink over dir
// otherwise.
func NewSink(ctx context.Context, dir string, o S3Options) (Sink, error) {
	if o.Bucket != "" {
		return NewS3Sink(ctx, o)
	}
	return NewFileSink(dir)
}
