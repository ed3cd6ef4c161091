package utils

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when nothing better can be detected
const DefaultContentType = "application/octet-stream"

// Fallbacks for extensions the platform mime table may not know
var commonTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".ts":   "application/typescript",
	".go":   "text/x-go",
	".py":   "text/x-python",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".rar":  "application/vnd.rar",
	".7z":   "application/x-7z-compressed",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
}

// DetectContentType detects the MIME type of a file from its extension and,
// when that fails, from the first 512 bytes of reader. reader may be nil.
func DetectContentType(filePath string, reader io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if contentType, ok := commonTypes[ext]; ok {
		return contentType, nil
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType, nil
	}

	if reader != nil {
		buffer := make([]byte, 512)
		n, err := io.ReadFull(reader, buffer)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", err
		}
		if contentType := http.DetectContentType(buffer[:n]); contentType != DefaultContentType {
			return contentType, nil
		}
	}

	return DefaultContentType, nil
}

// GetFileCategory returns a general category for the content type
func GetFileCategory(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	case strings.HasPrefix(contentType, "text/x-"),
		strings.Contains(contentType, "javascript"),
		strings.Contains(contentType, "typescript"),
		contentType == "application/json",
		contentType == "application/xml":
		return "code"
	case strings.HasPrefix(contentType, "text/"):
		return "text"
	case strings.Contains(contentType, "pdf"), strings.Contains(contentType, "msword"),
		strings.Contains(contentType, "officedocument"):
		return "document"
	case strings.Contains(contentType, "zip"), strings.Contains(contentType, "tar"),
		strings.Contains(contentType, "gzip"), strings.Contains(contentType, "rar"),
		strings.Contains(contentType, "7z"):
		return "archive"
	default:
		return "other"
	}
}

// KeyCategory classifies an object key by its extension
func KeyCategory(key string) string {
	contentType, _ := DetectContentType(key, nil)
	return GetFileCategory(contentType)
}

// CategoryIcon returns the list glyph for a category
func CategoryIcon(category string) string {
	switch category {
	case "image":
		return "🖼"
	case "video":
		return "🎬"
	case "audio":
		return "🎵"
	case "document":
		return "📄"
	case "archive":
		return "📦"
	case "code":
		return "📜"
	case "text":
		return "📝"
	default:
		return "📁"
	}
}
