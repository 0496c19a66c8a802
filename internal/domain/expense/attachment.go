package expense

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// Column limits for attachment metadata
const (
	MaxFileNameLength    = 255
	MaxContentTypeLength = 100
	MaxStoragePathLength = 500
)

// Attachment is a receipt or invoice file stored for an expense
type Attachment struct {
	ID          uuid.UUID
	ExpenseID   uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	StoragePath string
	UploadedAt  time.Time
}

// NewAttachment creates attachment metadata; the storage key is derived from the ids
func NewAttachment(expenseID uuid.UUID, fileName, contentType string, size int64, now time.Time) (*Attachment, error) {
	fileName = path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name is required")
	}
	if len(fileName) > MaxFileNameLength {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if len(contentType) > MaxContentTypeLength {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot exceed 100 characters")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "File is empty")
	}

	id := uuid.New()
	return &Attachment{
		ID:          id,
		ExpenseID:   expenseID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		StoragePath: "expenses/" + expenseID.String() + "/" + id.String() + strings.ToLower(path.Ext(fileName)),
		UploadedAt:  now,
	}, nil
}

// Extension returns the lowercased file extension including the dot
func (a Attachment) Extension() string {
	return strings.ToLower(path.Ext(a.FileName))
}
