package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// UploadField is the multipart field the server reads the file from
const UploadField = "file"

// UploadRequest describes one file upload. Body is streamed exactly once.
type UploadRequest struct {
	Bucket string
	// Key is the optional custom object key; blank keeps the server's
	// generated one.
	Key         string
	FileName    string
	ContentType string
	Body        io.Reader
	Size        int64
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload streams req.Body as multipart/form-data to PUT /upload/{bucket}
func (c *Client) Upload(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	const op = "upload file"
	path := UploadPath(req.Bucket, req.Key)

	if req.Body == nil {
		return nil, &OperationError{Op: op, Method: http.MethodPut, Path: path, Err: fmt.Errorf("no file body")}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeFilePart(mw, req))
	}()

	httpReq, err := c.newRequest(ctx, http.MethodPut, path, pr, mw.FormDataContentType())
	if err != nil {
		pr.Close()
		return nil, &OperationError{Op: op, Method: http.MethodPut, Path: path, Err: err}
	}

	var result UploadResult
	if err := c.do(op, httpReq, &result); err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	return &result, nil
}

func writeFilePart(mw *multipart.Writer, req *UploadRequest) error {
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		UploadField, quoteEscaper.Replace(req.FileName)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return fmt.Errorf("stream %s: %w", req.FileName, err)
	}
	return mw.Close()
}
