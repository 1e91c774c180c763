package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/editorcraftapp/editorcraft-server/internal/errors"
)

// fakeObjectStore records uploads in memory.
type fakeObjectStore struct {
	objects map[string][]byte
	fail    bool
}

func (f *fakeObjectStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.fail {
		return "", io.ErrUnexpectedEOF
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	if f.fail {
		return io.ErrUnexpectedEOF
	}
	delete(f.objects, key)
	return nil
}

func newUploadTest(t *testing.T) (*UploadService, *fakeObjectStore) {
	t.Helper()
	objects := &fakeObjectStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUploadService(objects, 1<<20, 5, logger), objects
}

func pngFile(t *testing.T, name string) UploadFile {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return UploadFile{Filename: name, Data: buf.Bytes()}
}

func TestUploadImage(t *testing.T) {
	svc, objects := newUploadTest(t)
	ctx := context.Background()

	result, err := svc.UploadImage(ctx, "user-1", pngFile(t, "photo.png"))
	require.NoError(t, err)

	assert.Equal(t, "photo.png", result.Filename)
	assert.True(t, strings.HasPrefix(result.URL, "https://cdn.example.com/editorcraft/user-1/"))
	assert.True(t, strings.HasSuffix(result.URL, ".png"))
	assert.NotEmpty(t, result.BlurHash)
	assert.Len(t, objects.objects, 1)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	svc, objects := newUploadTest(t)

	_, err := svc.UploadImage(context.Background(), "user-1", UploadFile{
		Filename: "evil.png",
		Data:     []byte("#!/bin/sh\necho pwned"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Empty(t, objects.objects)
}

func TestUploadImage_RejectsOversized(t *testing.T) {
	objects := &fakeObjectStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewUploadService(objects, 10, 5, logger) // 10-byte ceiling

	_, err := svc.UploadImage(context.Background(), "user-1", pngFile(t, "big.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUploadImage_RejectsEmpty(t *testing.T) {
	svc, _ := newUploadTest(t)

	_, err := svc.UploadImage(context.Background(), "user-1", UploadFile{Filename: "void.png"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUploadImage_StorageFailure(t *testing.T) {
	svc, objects := newUploadTest(t)
	objects.fail = true

	_, err := svc.UploadImage(context.Background(), "user-1", pngFile(t, "photo.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUpstream)
}

func TestUploadImages_Batch(t *testing.T) {
	svc, objects := newUploadTest(t)
	ctx := context.Background()

	files := []UploadFile{pngFile(t, "a.png"), pngFile(t, "b.png"), pngFile(t, "c.png")}
	results, err := svc.UploadImages(ctx, "user-1", files)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Len(t, objects.objects, 3)

	for i, r := range results {
		assert.Equal(t, files[i].Filename, r.Filename)
		assert.NotEmpty(t, r.URL)
	}
}

func TestUploadImages_ValidatesAllBeforeStoringAny(t *testing.T) {
	svc, objects := newUploadTest(t)

	files := []UploadFile{
		pngFile(t, "good.png"),
		{Filename: "bad.png", Data: []byte("not an image")},
	}
	_, err := svc.UploadImages(context.Background(), "user-1", files)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Contains(t, err.Error(), "bad.png")

	// The good file was not stored either.
	assert.Empty(t, objects.objects)
}

func TestDeleteImage(t *testing.T) {
	svc, objects := newUploadTest(t)
	ctx := context.Background()

	result, err := svc.UploadImage(ctx, "user-1", pngFile(t, "photo.png"))
	require.NoError(t, err)
	require.Len(t, objects.objects, 1)

	key := strings.TrimPrefix(result.URL, "https://cdn.example.com/")
	require.NoError(t, svc.DeleteImage(ctx, "user-1", key))
	assert.Empty(t, objects.objects)
}

func TestDeleteImage_ForeignPrefixDenied(t *testing.T) {
	svc, _ := newUploadTest(t)

	err := svc.DeleteImage(context.Background(), "user-2", "editorcraft/user-1/123-abc.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestUploadImages_BatchLimit(t *testing.T) {
	svc, _ := newUploadTest(t)

	files := make([]UploadFile, 6)
	for i := range files {
		files[i] = pngFile(t, "f.png")
	}
	_, err := svc.UploadImages(context.Background(), "user-1", files)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.UploadImages(context.Background(), "user-1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
