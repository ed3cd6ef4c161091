package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/config"
)

// maxErrorBody bounds how much of a rejected response is read for {error}
const maxErrorBody = 1 << 20

// RequestIDHeader carries the per-call correlation id
const RequestIDHeader = "X-Request-ID"

// Service is the set of calls the interactive client issues against the
// object storage server.
type Service interface {
	Health(ctx context.Context) error
	ListBuckets(ctx context.Context) ([]string, error)
	CreateBucket(ctx context.Context, name string) error
	DeleteBucket(ctx context.Context, name string) error
	ListObjects(ctx context.Context, bucket string) ([]string, error)
	Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	DownloadURL(bucket, key string) string
}

// Client is a thin HTTP transport for the object storage server. It performs
// no retries and no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a new client from configuration
func NewClient(cfg *config.ServerConfig) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		baseURL: raw,
		// Timeout zero leaves the platform default (no deadline).
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// BaseURL returns the server origin all paths are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call issues one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded JSON success payload.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &OperationError{Op: op, Method: method, Path: path, Err: err}
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, reader, contentType)
	if err != nil {
		return &OperationError{Op: op, Method: method, Path: path, Err: err}
	}
	return c.do(op, req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// do executes req and classifies the outcome. Any non-2xx status or
// network-level error becomes an *OperationError.
func (c *Client) do(op string, req *http.Request, out any) error {
	path := req.URL.RequestURI()
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"op":         op,
		"method":     req.Method,
		"path":       path,
		"request_id": req.Header.Get(RequestIDHeader),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request did not reach the server")
		return &OperationError{Op: op, Method: req.Method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		opErr := &OperationError{
			Op:      op,
			Method:  req.Method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
		log.WithField("server_error", opErr.Message).Warn("request rejected")
		return opErr
	}

	if out != nil {
		// an empty acknowledgement body is accepted
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			log.WithError(err).Warn("malformed success payload")
			return &OperationError{
				Op:     op,
				Method: req.Method,
				Path:   path,
				Status: resp.StatusCode,
				Err:    fmt.Errorf("decode response: %w", err),
			}
		}
	}

	log.Debug("request completed")
	return nil
}

// readErrorMessage extracts the optional {error} field of a rejected response
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil {
		return ""
	}
	return strings.TrimSpace(er.Error)
}

// Health probes GET /health; any 2xx means the server is online
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, "health check", http.MethodGet, "/health", nil, nil)
}

// ListBuckets returns bucket names in server order
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	var resp BucketsResponse
	if err := c.call(ctx, "list buckets", http.MethodGet, "/buckets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Buckets, nil
}

// CreateBucket creates a bucket named name
func (c *Client) CreateBucket(ctx context.Context, name string) error {
	var resp MessageResponse
	return c.call(ctx, "create bucket", http.MethodPost, "/buckets", CreateBucketRequest{Name: name}, &resp)
}

// DeleteBucket deletes the bucket named name
func (c *Client) DeleteBucket(ctx context.Context, name string) error {
	var resp MessageResponse
	return c.call(ctx, "delete bucket", http.MethodDelete, "/buckets/"+url.PathEscape(name), nil, &resp)
}

// ListObjects returns the object keys of bucket in server order
func (c *Client) ListObjects(ctx context.Context, bucket string) ([]string, error) {
	var resp ObjectsResponse
	if err := c.call(ctx, "list files", http.MethodGet, "/list/"+url.PathEscape(bucket), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// DeleteObject deletes key from bucket
func (c *Client) DeleteObject(ctx context.Context, bucket, key string) error {
	return c.call(ctx, "delete file", http.MethodDelete, ObjectPath("/delete", bucket, key), nil, nil)
}

// DownloadURL returns the absolute retrieval URL of key in bucket
func (c *Client) DownloadURL(bucket, key string) string {
	return c.baseURL + ObjectPath("/download", bucket, key)
}

// ObjectPath builds prefix/{bucket}/{key}. Each '/'-separated key segment is
// escaped on its own so nested keys keep their separators.
func ObjectPath(prefix, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return prefix + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// UploadPath builds /upload/{bucket}, adding ?key= only for a non-empty
// trimmed custom key.
func UploadPath(bucket, customKey string) string {
	path := "/upload/" + url.PathEscape(bucket)
	if key := strings.TrimSpace(customKey); key != "" {
		path += "?key=" + url.QueryEscape(key)
	}
	return path
}
