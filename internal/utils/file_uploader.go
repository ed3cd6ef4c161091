package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
	"github.com/HaiFongPan/s3clone-cli/internal/config"
)

// ProgressCallback reports streamed bytes of an upload
type ProgressCallback func(uploaded, total int64, percentage float64)

// Uploader is implemented by anything that can push a local file to a bucket
type Uploader interface {
	// UploadFile uploads localPath to bucket. key is the optional custom
	// object key.
	UploadFile(ctx context.Context, bucket, localPath, key string, options *UploadOptions) (*api.UploadResult, error)

	// UploadFileWithProgress is UploadFile with a progress callback
	UploadFileWithProgress(ctx context.Context, bucket, localPath, key string, options *UploadOptions, callback ProgressCallback) (*api.UploadResult, error)
}

// UploadOptions tune a single upload
type UploadOptions struct {
	ContentType      string
	CompressionLevel string
}

// uploadError wraps local failures that happen before the file reaches the
// transport.
type uploadError struct {
	operation string
	path      string
	err       error
}

func (e *uploadError) Error() string {
	return fmt.Sprintf("upload %s failed for %s: %v", e.operation, e.path, e.err)
}

func (e *uploadError) Unwrap() error {
	return e.err
}

// fileUploader streams local files through an api.Service
type fileUploader struct {
	service api.Service
	config  *config.UploadConfig
}

// NewFileUploader creates a new file uploader
func NewFileUploader(service api.Service, cfg *config.UploadConfig) Uploader {
	if cfg == nil {
		cfg = &config.UploadConfig{AutoDetectContentType: true}
	}
	return &fileUploader{
		service: service,
		config:  cfg,
	}
}

// UploadFile implements Uploader
func (fu *fileUploader) UploadFile(ctx context.Context, bucket, localPath, key string, options *UploadOptions) (*api.UploadResult, error) {
	return fu.UploadFileWithProgress(ctx, bucket, localPath, key, options, nil)
}

// UploadFileWithProgress implements Uploader
func (fu *fileUploader) UploadFileWithProgress(ctx context.Context, bucket, localPath, key string, options *UploadOptions, callback ProgressCallback) (*api.UploadResult, error) {
	if options == nil {
		options = &UploadOptions{}
	}

	file, fileInfo, err := fu.openAndValidateFile(localPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name := fileInfo.Name()
	contentType, err := fu.determineContentType(localPath, file, options.ContentType)
	if err != nil {
		return nil, err
	}

	var body io.Reader = file
	size := fileInfo.Size()

	if options.CompressionLevel != "" && IsImageFile(localPath) {
		data, err := CompressImage(file, options.CompressionLevel)
		if err != nil {
			return nil, &uploadError{operation: "compress image", path: localPath, err: err}
		}
		logrus.Infof("Compressed %s from %d to %d bytes", name, size, len(data))
		body = bytes.NewReader(data)
		size = int64(len(data))
		name = CompressedName(name)
		contentType = "image/jpeg"
	}

	if callback != nil {
		body = &progressReader{reader: body, total: size, callback: callback}
	}

	logrus.WithFields(logrus.Fields{
		"bucket":       bucket,
		"file":         localPath,
		"size":         size,
		"content_type": contentType,
	}).Info("uploading file")

	result, err := fu.service.Upload(ctx, &api.UploadRequest{
		Bucket:      bucket,
		Key:         key,
		FileName:    name,
		ContentType: contentType,
		Body:        body,
		Size:        size,
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("Successfully uploaded %s to %s/%s", localPath, bucket, result.Key)
	return result, nil
}

// openAndValidateFile opens a regular file and returns its info
func (fu *fileUploader) openAndValidateFile(localPath string) (*os.File, os.FileInfo, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, nil, &uploadError{operation: "open file", path: localPath, err: err}
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, &uploadError{operation: "get file info", path: localPath, err: err}
	}

	if fileInfo.IsDir() {
		file.Close()
		return nil, nil, &uploadError{operation: "open file", path: localPath, err: fmt.Errorf("%s is a directory", filepath.Base(localPath))}
	}

	return file, fileInfo, nil
}

// determineContentType picks the part Content-Type, sniffing the file head
// only when the extension is unknown. file is left at offset 0.
func (fu *fileUploader) determineContentType(localPath string, file *os.File, explicitType string) (string, error) {
	if explicitType != "" {
		return explicitType, nil
	}
	if !fu.config.AutoDetectContentType {
		return DefaultContentType, nil
	}

	contentType, err := DetectContentType(localPath, file)
	if err != nil {
		logrus.Warnf("Failed to detect content type for %s: %v", localPath, err)
		contentType = DefaultContentType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", &uploadError{operation: "rewind file", path: localPath, err: err}
	}
	return contentType, nil
}

// progressReader wraps an io.Reader and reports progress on every read
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressCallback
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)

	if n > 0 {
		pr.read += int64(n)
		percentage := 100.0
		if pr.total > 0 {
			percentage = float64(pr.read) / float64(pr.total) * 100
		}
		if percentage > 100 {
			percentage = 100
		}
		pr.callback(pr.read, pr.total, percentage)
	}

	return n, err
}
