package utils

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// maxCompressedEdge bounds the longest side of a re-encoded image
const maxCompressedEdge = 1920

var jpegQualities = map[string]int{
	"high":   95,
	"fine":   85,
	"normal": 75,
	"low":    60,
}

// IsImageFile checks if the file is a re-encodable image based on extension
func IsImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".gif":
		return true
	}
	return false
}

// CompressImage decodes r and re-encodes it as JPEG at the given level,
// shrinking it to fit maxCompressedEdge.
func CompressImage(r io.Reader, level string) ([]byte, error) {
	quality, ok := jpegQualities[level]
	if !ok {
		return nil, fmt.Errorf("invalid compression level: %s (use: high, fine, normal, low)", level)
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxCompressedEdge || b.Dy() > maxCompressedEdge {
		img = imaging.Fit(img, maxCompressedEdge, maxCompressedEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode compressed image: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressedName swaps the extension of name for .jpg
func CompressedName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
