package expense

import (
	"context"
	"io"
	"path"
	"slices"
	"strings"
)

// ObjectStorage stores attachment content under a key
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// AttachmentSettings bounds what may be uploaded
type AttachmentSettings struct {
	MaxFileSizeMB     int
	AllowedExtensions []string
}

// DefaultAttachmentSettings allows PDFs and common images up to 10 MB
func DefaultAttachmentSettings() AttachmentSettings {
	return AttachmentSettings{
		MaxFileSizeMB:     10,
		AllowedExtensions: []string{".pdf", ".jpg", ".jpeg", ".png"},
	}
}

// MaxBytes is the upload limit in bytes
func (s AttachmentSettings) MaxBytes() int64 {
	return int64(s.MaxFileSizeMB) << 20
}

// Allows reports whether fileName has a permitted extension
func (s AttachmentSettings) Allows(fileName string) bool {
	ext := strings.ToLower(path.Ext(fileName))
	return ext != "" && slices.ContainsFunc(s.AllowedExtensions, func(allowed string) bool {
		return strings.EqualFold(allowed, ext)
	})
}
