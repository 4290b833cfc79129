package views

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/client"
	"github.com/dmitrijs2005/traffichub/internal/client/gate"
)

// Preview describes the selected image. It is built locally, without any
// request.
type Preview struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
	Width       int
	Height      int
}

func (p Preview) String() string {
	return fmt.Sprintf("%s (%s, %d bytes, %dx%d)", p.Name, p.ContentType, p.Size, p.Width, p.Height)
}

type AutoDetectView struct {
	base
	preview *Preview
}

func NewAutoDetect(d Deps) *AutoDetectView {
	v := &AutoDetectView{}
	v.init(string(gate.ViewAutoDetect), d)
	return v
}

// Select picks the image to upload. An empty path clears the selection.
func (v *AutoDetectView) Select(path string) {
	path = strings.TrimSpace(path)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.preview = nil
	v.status, v.msg, v.err = StatusIdle, "", nil
	if path == "" {
		return
	}

	p, err := buildPreview(path)
	if err != nil {
		v.rejectLocked(err)
		return
	}
	v.preview = p
}

func buildPreview(path string) (*Preview, *ValidationError) {
	f, err := os.Open(path)
	if err != nil {
		return nil, invalid("file", "Could not open the selected file")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		return nil, invalid("file", "Could not open the selected file")
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, invalid("file", "Could not read the selected file")
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return nil, invalid("file", "Please select an image file")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, invalid("file", "Could not read the selected file")
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, invalid("file", "The selected image could not be decoded")
	}

	return &Preview{
		Path:        path,
		Name:        filepath.Base(path),
		Size:        st.Size(),
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func (v *AutoDetectView) Preview() *Preview {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.preview == nil {
		return nil
	}
	cp := *v.preview
	return &cp
}

// Submit uploads the selected image and shows the detection outcome.
func (v *AutoDetectView) Submit(ctx context.Context) {
	v.mu.Lock()
	if v.preview == nil {
		v.rejectLocked(invalid("file", "Please select an image file first."))
		v.mu.Unlock()
		return
	}
	path := v.preview.Path
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	var msg string
	f, err := os.Open(path)
	if err != nil {
		err = invalid("file", "Could not open the selected file")
	} else {
		msg, err = v.deps.API.AutoDetect(ctx, client.Upload{Name: path, Reader: f})
		_ = f.Close()
	}

	v.finish(ctx, seq, err, "Detection failed", func() {
		if err == nil {
			v.msg = msg
		}
	})
}
