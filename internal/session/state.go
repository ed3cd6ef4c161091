// Package session holds the client-side state of one interactive session:
// the current bucket, the file staged for upload and the in-flight guard.
// Nothing here is persisted.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIsDirectory is returned when a directory is chosen as the upload file
var ErrIsDirectory = errors.New("is a directory")

// FileHandle references a local file chosen for upload. The content is only
// opened by the upload call.
type FileHandle struct {
	Name string
	Size int64
	Path string
}

// Label is the drop-area text for a selected file
func (h FileHandle) Label() string {
	return fmt.Sprintf("%s (%s)", h.Name, FormatSize(h.Size))
}

// NewFileHandle stats path and returns a handle for a regular file
func NewFileHandle(path string) (FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileHandle{}, fmt.Errorf("cannot use %s: %w", path, err)
	}
	if info.IsDir() {
		return FileHandle{}, fmt.Errorf("cannot use %s: %w", path, ErrIsDirectory)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return FileHandle{
		Name: info.Name(),
		Size: info.Size(),
		Path: abs,
	}, nil
}

// State is the single owner of the session selection. The zero value is an
// empty session.
type State struct {
	currentBucket string
	selectedFile  *FileHandle
}

// CurrentBucket returns the selected bucket or ""
func (s *State) CurrentBucket() string {
	return s.currentBucket
}

// HasBucket reports whether a bucket is selected
func (s *State) HasBucket() bool {
	return s.currentBucket != ""
}

// SelectedFile returns the staged file, if any
func (s *State) SelectedFile() (FileHandle, bool) {
	if s.selectedFile == nil {
		return FileHandle{}, false
	}
	return *s.selectedFile, true
}

// SelectBucket makes name the current bucket
func (s *State) SelectBucket(name string) {
	s.currentBucket = name
}

// ClearBucketIf clears the current bucket when it is name and reports
// whether it did.
func (s *State) ClearBucketIf(name string) bool {
	if s.currentBucket == "" || s.currentBucket != name {
		return false
	}
	s.currentBucket = ""
	return true
}

// ChooseFile stages h for upload, replacing any earlier choice
func (s *State) ChooseFile(h FileHandle) {
	s.selectedFile = &h
}

// ClearFile drops the staged file
func (s *State) ClearFile() {
	s.selectedFile = nil
}

// CanUpload reports whether both a file and a bucket are selected
func (s *State) CanUpload() bool {
	return s.currentBucket != "" && s.selectedFile != nil
}
