package utils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
	"github.com/HaiFongPan/s3clone-cli/internal/config"
)

// MockService stands in for the HTTP transport
type MockService struct {
	mock.Mock
	api.Service

	uploaded []byte
}

func (m *MockService) Upload(ctx context.Context, req *api.UploadRequest) (*api.UploadResult, error) {
	// drain the body so progress callbacks fire
	if req.Body != nil {
		m.uploaded, _ = io.ReadAll(req.Body)
	}
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*api.UploadResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileUploader_UploadFile_Success(t *testing.T) {
	path := writeTempFile(t, "test.txt", "Hello, World!")

	svc := &MockService{}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(req *api.UploadRequest) bool {
		return req.Bucket == "docs" &&
			req.Key == "notes/test.txt" &&
			req.FileName == "test.txt" &&
			req.ContentType == "text/plain" &&
			req.Size == 13
	})).Return(&api.UploadResult{Key: "notes/test.txt"}, nil)

	uploader := NewFileUploader(svc, &config.UploadConfig{AutoDetectContentType: true})
	res, err := uploader.UploadFile(context.Background(), "docs", path, "notes/test.txt", nil)

	require.NoError(t, err)
	assert.Equal(t, "notes/test.txt", res.Key)
	assert.Equal(t, "Hello, World!", string(svc.uploaded))
	svc.AssertExpectations(t)
}

func TestFileUploader_UploadFile_FileNotExists(t *testing.T) {
	svc := &MockService{}
	uploader := NewFileUploader(svc, nil)

	_, err := uploader.UploadFile(context.Background(), "docs", "/nonexistent/file.txt", "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "open file")
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestFileUploader_UploadFile_Directory(t *testing.T) {
	svc := &MockService{}
	uploader := NewFileUploader(svc, nil)

	_, err := uploader.UploadFile(context.Background(), "docs", t.TempDir(), "", nil)
	require.Error(t, err)
	svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestFileUploader_TransportErrorPassesThrough(t *testing.T) {
	path := writeTempFile(t, "a.bin", "data")
	svc := &MockService{}
	svc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, &api.OperationError{Op: "upload file", Status: 400, Message: "Bucket not found"})

	uploader := NewFileUploader(svc, nil)
	_, err := uploader.UploadFile(context.Background(), "docs", path, "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrOperationFailed)
	assert.Equal(t, "Bucket not found", api.ServerMessage(err))
}

func TestFileUploader_WithProgress(t *testing.T) {
	content := strings.Repeat("x", 4096)
	path := writeTempFile(t, "big.dat", content)

	svc := &MockService{}
	svc.On("Upload", mock.Anything, mock.Anything).Return(&api.UploadResult{Key: "big.dat"}, nil)

	var last int64
	var lastPct float64
	calls := 0
	callback := func(uploaded, total int64, percentage float64) {
		calls++
		last = uploaded
		lastPct = percentage
		assert.Equal(t, int64(4096), total)
	}

	uploader := NewFileUploader(svc, nil)
	_, err := uploader.UploadFileWithProgress(context.Background(), "docs", path, "", nil, callback)

	require.NoError(t, err)
	assert.Greater(t, calls, 0)
	assert.Equal(t, int64(4096), last)
	assert.Equal(t, 100.0, lastPct)
}

func TestFileUploader_ContentTypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		cfg      *config.UploadConfig
		explicit string
		wantType string
	}{
		{"extension", "photo.png", &config.UploadConfig{AutoDetectContentType: true}, "", "image/png"},
		{"explicit wins", "photo.png", &config.UploadConfig{AutoDetectContentType: true}, "image/webp", "image/webp"},
		{"detection disabled", "photo.png", &config.UploadConfig{}, "", DefaultContentType},
		{"sniffed", "page.unknownext", &config.UploadConfig{AutoDetectContentType: true}, "", "text/html; charset=utf-8"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, tc.file, "<html><body>hi</body></html>")

			svc := &MockService{}
			svc.On("Upload", mock.Anything, mock.MatchedBy(func(req *api.UploadRequest) bool {
				return req.ContentType == tc.wantType
			})).Return(&api.UploadResult{Key: tc.file}, nil)

			uploader := NewFileUploader(svc, tc.cfg)
			_, err := uploader.UploadFile(context.Background(), "docs", path, "", &UploadOptions{ContentType: tc.explicit})
			require.NoError(t, err)

			// sniffing must not eat the head of the file
			assert.Equal(t, "<html><body>hi</body></html>", string(svc.uploaded))
			svc.AssertExpectations(t)
		})
	}
}

func TestFileUploader_Compression(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "gradient.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	svc := &MockService{}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(req *api.UploadRequest) bool {
		return req.FileName == "gradient.jpg" && req.ContentType == "image/jpeg"
	})).Return(&api.UploadResult{Key: "gradient.jpg"}, nil)

	uploader := NewFileUploader(svc, nil)
	_, err := uploader.UploadFile(context.Background(), "media", path, "", &UploadOptions{CompressionLevel: "normal"})
	require.NoError(t, err)

	// JPEG SOI marker
	require.GreaterOrEqual(t, len(svc.uploaded), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, svc.uploaded[:2])
	svc.AssertExpectations(t)
}

func TestCompressImage_InvalidLevel(t *testing.T) {
	_, err := CompressImage(strings.NewReader("irrelevant"), "ultra")
	assert.ErrorContains(t, err, "invalid compression level")
}

func TestFileUploader_RewindFailureAbortsUpload(t *testing.T) {
	path := writeTempFile(t, "blob.zzzunknown", "payload that was sniffed")
	file, err := os.Open(path)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	fu := &fileUploader{service: &MockService{}, config: &config.UploadConfig{AutoDetectContentType: true}}
	contentType, err := fu.determineContentType(path, file, "")

	require.Error(t, err)
	assert.Empty(t, contentType)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Contains(t, err.Error(), "rewind file")
}

func TestFileUploader_SniffLeavesFileAtStart(t *testing.T) {
	path := writeTempFile(t, "blob.zzzunknown", "plain text content")
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	fu := &fileUploader{service: &MockService{}, config: &config.UploadConfig{AutoDetectContentType: true}}
	_, err = fu.determineContentType(path, file, "")
	require.NoError(t, err)

	rest, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "plain text content", string(rest))
}
