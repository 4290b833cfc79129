package views

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "car.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestAutoDetect_SubmitWithoutFile(t *testing.T) {
	e := newEnv()
	v := NewAutoDetect(e.deps)

	v.Submit(context.Background())

	assert.Equal(t, StatusError, v.Status())
	assert.Equal(t, "Please select an image file first.", v.Message())
	assert.Zero(t, e.api.Calls("AutoDetect"))
}

func TestAutoDetect_PreviewIsLocal(t *testing.T) {
	e := newEnv()
	v := NewAutoDetect(e.deps)
	path := writePNG(t, 8, 4)

	v.Select(path)

	p := v.Preview()
	require.NotNil(t, p)
	assert.Equal(t, "car.png", p.Name)
	assert.Equal(t, "image/png", p.ContentType)
	assert.Equal(t, 8, p.Width)
	assert.Equal(t, 4, p.Height)
	assert.Positive(t, p.Size)
	assert.Contains(t, p.String(), "8x4")
	assert.Equal(t, StatusIdle, v.Status())
	assert.Zero(t, e.api.Calls("AutoDetect"))
}

func TestAutoDetect_RejectsNonImages(t *testing.T) {
	e := newEnv()
	v := NewAutoDetect(e.deps)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text, not a picture"), 0o600))

	v.Select(txt)
	assert.Nil(t, v.Preview())
	assert.Equal(t, "Please select an image file", v.Message())

	v.Select(filepath.Join(t.TempDir(), "missing.png"))
	assert.Nil(t, v.Preview())
	assert.Equal(t, "Could not open the selected file", v.Message())

	v.Select("")
	assert.Nil(t, v.Preview())
	assert.Equal(t, StatusIdle, v.Status())
}

func TestAutoDetect_UploadsSelectedImage(t *testing.T) {
	e := newEnv()
	e.api.detectMsg = "Violation recorded for KA01AB1234"
	v := NewAutoDetect(e.deps)
	path := writePNG(t, 2, 2)
	want, err := os.ReadFile(path)
	require.NoError(t, err)

	v.Select(path)
	v.Submit(context.Background())

	assert.Equal(t, StatusSuccess, v.Status())
	assert.Equal(t, "Violation recorded for KA01AB1234", v.Message())
	assert.Equal(t, 1, e.api.Calls("AutoDetect"))
	assert.Equal(t, path, e.api.lastUpload)
	assert.Equal(t, string(want), e.api.uploadedData)
}

func TestAutoDetect_FailureUsesFallback(t *testing.T) {
	e := newEnv()
	e.api.detectErr = transport()
	v := NewAutoDetect(e.deps)

	v.Select(writePNG(t, 1, 1))
	v.Submit(context.Background())

	assert.Equal(t, StatusError, v.Status())
	assert.Equal(t, "Detection failed", v.Message())
}

func TestAutoDetect_UnauthorizedExpiresSession(t *testing.T) {
	e := newEnv()
	e.api.detectErr = unauthorized()
	v := NewAutoDetect(e.deps)

	v.Select(writePNG(t, 1, 1))
	v.Submit(context.Background())

	assert.Equal(t, msgSessionExpired, v.Message())
	assert.Equal(t, 1, e.sess.Logouts())
}
