package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaiFongPan/s3clone-cli/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.ServerConfig{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient(&config.ServerConfig{BaseURL: "localhost"})
	assert.Error(t, err)
}

func TestClient_Health(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		writeJSON(w, http.StatusOK, HealthInfo{Message: "S3 Clone Server is running"})
	})

	assert.NoError(t, c.Health(context.Background()))
}

func TestClient_HealthOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(&config.ServerConfig{BaseURL: base})
	require.NoError(t, err)

	err = c.Health(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOperationFailed))
	assert.True(t, IsConnectivity(err))
}

func TestClient_ListBuckets(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/buckets", r.URL.Path)
		writeJSON(w, http.StatusOK, BucketsResponse{Buckets: []string{"photos", "docs"}})
	})

	buckets, err := c.ListBuckets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"photos", "docs"}, buckets)
}

func TestClient_ServerErrorMessageSurfaces(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	_, err := c.ListObjects(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOperationFailed))
	assert.False(t, IsConnectivity(err))
	assert.Equal(t, "not found", ServerMessage(err))
	assert.Equal(t, "not found", MessageOr(err, "Failed to load files"))
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.DeleteBucket(context.Background(), "photos")
	require.Error(t, err)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusInternalServerError, opErr.Status)
	assert.Empty(t, opErr.Message)
	assert.Equal(t, "Failed to delete bucket 'photos'", MessageOr(err, "Failed to delete bucket 'photos'"))
}

func TestClient_MalformedSuccessPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := c.ListBuckets(context.Background())
	assert.ErrorIs(t, err, ErrOperationFailed)
}

func TestClient_CreateBucket(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/buckets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body CreateBucketRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "photos", body.Name)

		writeJSON(w, http.StatusCreated, MessageResponse{Message: "Bucket created"})
	})

	assert.NoError(t, c.CreateBucket(context.Background(), "photos"))
}

func TestClient_DeleteObjectEscapesKeySegments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/delete/docs/reports/q1%20final.pdf", r.URL.EscapedPath())
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, c.DeleteObject(context.Background(), "docs", "reports/q1 final.pdf"))
}

func TestClient_DownloadURL(t *testing.T) {
	c, err := NewClient(&config.ServerConfig{BaseURL: "http://localhost:3000"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/download/photos/cat.png", c.DownloadURL("photos", "cat.png"))
	assert.Equal(t, "http://localhost:3000/download/docs/a/b%3Fc.txt", c.DownloadURL("docs", "a/b?c.txt"))
}

func TestUploadPath(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		key    string
		want   string
	}{
		{"no key", "docs", "", "/upload/docs"},
		{"blank key", "docs", "   ", "/upload/docs"},
		{"nested key", "docs", "notes/a.txt", "/upload/docs?key=notes%2Fa.txt"},
		{"trimmed key", "docs", "  a.txt ", "/upload/docs?key=a.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UploadPath(tc.bucket, tc.key))
		})
	}
}

func TestClient_Upload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/upload/docs", r.URL.Path)
		assert.Equal(t, "key=notes%2Fa.txt", r.URL.RawQuery)

		file, header, err := r.FormFile(UploadField)
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.Equal(t, "a.txt", header.Filename)
		assert.Equal(t, "text/plain", header.Header.Get("Content-Type"))

		writeJSON(w, http.StatusOK, UploadResult{
			Message:  "File uploaded successfully",
			Bucket:   "docs",
			Key:      "notes/a.txt",
			Size:     5,
			MimeType: "text/plain",
		})
	})

	res, err := c.Upload(context.Background(), &UploadRequest{
		Bucket:      "docs",
		Key:         "notes/a.txt",
		FileName:    "a.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("hello"),
		Size:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, "notes/a.txt", res.Key)
	assert.Equal(t, int64(5), res.Size)
}

func TestClient_UploadWithoutKeyHasNoQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, UploadResult{Key: "generated-key.txt"})
	})

	res, err := c.Upload(context.Background(), &UploadRequest{
		Bucket:   "docs",
		FileName: "a.txt",
		Body:     strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-key.txt", res.Key)
}

func TestClient_UploadRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	})

	_, err := c.Upload(context.Background(), &UploadRequest{
		Bucket:   "docs",
		FileName: "a.txt",
		Body:     strings.NewReader("hello"),
	})
	require.Error(t, err)
	assert.Equal(t, "No file uploaded", ServerMessage(err))
}

func TestOperationError_Message(t *testing.T) {
	err := &OperationError{Op: "list files", Method: "GET", Path: "/list/x", Status: 500}
	assert.Equal(t, "list files failed: GET /list/x returned status 500", err.Error())

	err = &OperationError{Op: "list files", Message: "bucket missing"}
	assert.Equal(t, "list files failed: bucket missing", err.Error())
}
