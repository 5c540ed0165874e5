package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T) *FileStorageService {
	t.Helper()
	svc, err := NewFileStorageService(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return svc
}

// multipartFileHeader builds a real multipart.FileHeader around the payload.
func multipartFileHeader(t *testing.T, fieldName, fileName, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + fileName + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File[fieldName]
	require.Len(t, files, 1)
	return files[0]
}

func TestNewFileStorageServiceRequiresPath(t *testing.T) {
	_, err := NewFileStorageService("", zap.NewNop())
	assert.Error(t, err)
}

func TestSaveUploadedImage(t *testing.T) {
	svc := newTestStorage(t)
	fh := multipartFileHeader(t, "image", "portrait.png", "image/png", []byte("png-bytes"))

	relPath, err := svc.SaveUploadedImage(fh, "uploads")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "uploads/"))
	assert.True(t, strings.HasSuffix(relPath, ".png"))

	data, err := os.ReadFile(filepath.Join(svc.storagePath, relPath))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveUploadedImageInfersExtension(t *testing.T) {
	svc := newTestStorage(t)
	fh := multipartFileHeader(t, "image", "portrait", "image/jpeg", []byte("jpeg-bytes"))

	relPath, err := svc.SaveUploadedImage(fh, "uploads")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, ".jpg"))
}

func TestSaveUploadedImageRejectsUnknownType(t *testing.T) {
	svc := newTestStorage(t)
	fh := multipartFileHeader(t, "image", "mystery", "application/octet-stream", []byte("???"))

	_, err := svc.SaveUploadedImage(fh, "uploads")
	assert.Error(t, err)
}

func TestEncodeDataURI(t *testing.T) {
	svc := newTestStorage(t)
	fh := multipartFileHeader(t, "image", "portrait.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})

	uri, err := svc.EncodeDataURI(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,iVBORw==", uri)
}

func TestDeleteFile(t *testing.T) {
	svc := newTestStorage(t)
	fh := multipartFileHeader(t, "image", "portrait.png", "image/png", []byte("png-bytes"))

	relPath, err := svc.SaveUploadedImage(fh, "uploads")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(relPath))
	_, err = os.Stat(filepath.Join(svc.storagePath, relPath))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is not an error.
	assert.NoError(t, svc.DeleteFile(relPath))

	assert.Error(t, svc.DeleteFile("../escape.png"))
	assert.Error(t, svc.DeleteFile(""))
}

func TestListFilesOlderThan(t *testing.T) {
	svc := newTestStorage(t)
	fh := multipartFileHeader(t, "image", "portrait.png", "image/png", []byte("png-bytes"))

	relPath, err := svc.SaveUploadedImage(fh, "uploads")
	require.NoError(t, err)

	stale, err := svc.ListFilesOlderThan("uploads", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, stale)

	stale, err = svc.ListFilesOlderThan("uploads", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{relPath}, stale)

	// A directory that was never written to is simply empty.
	stale, err = svc.ListFilesOlderThan("missing", time.Now())
	require.NoError(t, err)
	assert.Empty(t, stale)
}
