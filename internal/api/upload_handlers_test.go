package api

import (
	"bytes"
	"encoding/json/v2"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePNG encodes a small solid-color PNG.
func makePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 60, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartBody builds a multipart form with the given field holding files.
func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := writer.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func (ts *testServer) doUpload(t *testing.T, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	body, contentType := multipartBody(t, "image", map[string][]byte{"photo.png": makePNG(t)})
	w := ts.doUpload(t, "/api/upload/image", token, body, contentType)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result UploadImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.True(t, result.Success)
	assert.Equal(t, "photo.png", result.Filename)
	assert.Contains(t, result.URL, "/editorcraft/")
	assert.Len(t, ts.objects.objects, 1)
}

func TestUploadImage_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	body, contentType := multipartBody(t, "image", map[string][]byte{"photo.png": makePNG(t)})
	w := ts.doUpload(t, "/api/upload/image", "", body, contentType)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, ts.objects.objects)
}

func TestUploadImage_NoFile(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	body, contentType := multipartBody(t, "wrong-field", map[string][]byte{"photo.png": makePNG(t)})
	w := ts.doUpload(t, "/api/upload/image", token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	body, contentType := multipartBody(t, "image", map[string][]byte{
		"evil.png": []byte("#!/bin/sh\necho pwned"),
	})
	w := ts.doUpload(t, "/api/upload/image", token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ts.objects.objects)
}

func TestUploadImages_Batch(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	png := makePNG(t)
	body, contentType := multipartBody(t, "images", map[string][]byte{
		"a.png": png,
		"b.png": png,
		"c.png": png,
	})
	w := ts.doUpload(t, "/api/upload/images", token, body, contentType)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result UploadImagesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.True(t, result.Success)
	assert.Len(t, result.Files, 3)
	assert.Len(t, ts.objects.objects, 3)
}

func TestUploadImages_Empty(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	body, contentType := multipartBody(t, "images", nil)
	w := ts.doUpload(t, "/api/upload/images", token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUploadedImage(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	body, contentType := multipartBody(t, "image", map[string][]byte{"photo.png": makePNG(t)})
	w := ts.doUpload(t, "/api/upload/image", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code)

	var uploaded UploadImageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))
	key := strings.TrimPrefix(uploaded.URL, "https://cdn.example.com/")

	req := httptest.NewRequest(http.MethodDelete, "/api/upload/image/"+key, http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, ts.objects.objects)
}

func TestDeleteUploadedImage_ForeignKeyDenied(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/upload/image/editorcraft/someone-else/1-abc.png", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
