package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Downloader fetches object content
type Downloader interface {
	Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
}

var _ Downloader = (*Client)(nil)

// Download opens GET /download/{bucket}/{key}. The caller closes the body.
// The returned size is -1 when the server does not announce it.
func (c *Client) Download(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	const op = "download file"
	path := ObjectPath("/download", bucket, key)

	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, 0, &OperationError{Op: op, Method: http.MethodGet, Path: path, Err: err}
	}
	req.Header.Del("Accept")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &OperationError{Op: op, Method: http.MethodGet, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, 0, &OperationError{
			Op:      op,
			Method:  http.MethodGet,
			Path:    path,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}

	logrus.WithFields(logrus.Fields{
		"op":         op,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": req.Header.Get(RequestIDHeader),
		"duration":   time.Since(start).String(),
	}).Debug("download started")

	return resp.Body, resp.ContentLength, nil
}
