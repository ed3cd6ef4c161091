package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
)

// FileDownloader saves objects to the local filesystem
type FileDownloader struct {
	source api.Downloader
	dir    string
}

// NewFileDownloader creates a downloader writing into dir. An empty dir
// means ~/Downloads.
func NewFileDownloader(source api.Downloader, dir string) (*FileDownloader, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(homeDir, "Downloads")
	}
	return &FileDownloader{source: source, dir: dir}, nil
}

// Dir returns the destination directory
func (d *FileDownloader) Dir() string {
	return d.dir
}

// DownloadFile fetches key from bucket and returns the local path written.
// Existing files are never overwritten; a numbered name is chosen instead.
func (d *FileDownloader) DownloadFile(ctx context.Context, bucket, key string, callback ProgressCallback) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	body, size, err := d.source.Download(ctx, bucket, key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	localPath := resolveFileNameConflict(filepath.Join(d.dir, filepath.Base(key)))

	file, err := os.OpenFile(localPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create local file: %w", err)
	}

	var src io.Reader = body
	if callback != nil {
		src = &progressReader{reader: body, total: size, callback: callback}
	}

	if _, err := io.Copy(file, src); err != nil {
		file.Close()
		os.Remove(localPath)
		return "", fmt.Errorf("failed to write file content: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	logrus.Infof("File downloaded successfully to: %s", localPath)
	return localPath, nil
}

// resolveFileNameConflict returns path, or "name (n).ext" when path exists
func resolveFileNameConflict(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]

	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}

	return fmt.Sprintf("%s_%d%s", base, os.Getpid(), ext)
}
