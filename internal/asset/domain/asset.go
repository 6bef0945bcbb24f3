// Package domain defines the binary asset relayed from the origin to clients.
package domain

import (
	"io"
	"mime"
	"strings"
)

const (
	// DefaultContentType is used when the origin does not declare one.
	DefaultContentType = "application/octet-stream"

	heifContentType = "image/heif"
	heicContentType = "image/heic"
)

// Asset is an origin response whose body is streamed to the client.
// The caller must close Body.
type Asset struct {
	ContentType string
	// ContentLength is the body size in bytes, or -1 when unknown.
	ContentLength int64
	Body          io.ReadCloser
}

// NormalizeContentType maps the origin content type to the one served to clients.
// The origin labels every HEIC/HEIF image as image/heif while the consuming app only
// accepts image/heic, so that type is rewritten regardless of case or parameters.
func NormalizeContentType(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return DefaultContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == heifContentType {
		return heicContentType
	}
	return contentType
}
