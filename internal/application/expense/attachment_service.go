package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/application/pipeline"
	"github.com/propman/backend/internal/domain/expense"
	"github.com/propman/backend/internal/domain/shared"
)

// UploadAttachment stores a file for an expense
func (s *ExpenseService) UploadAttachment(ctx context.Context, cmd UploadAttachmentCommand) (*AttachmentResponse, error) {
	return pipeline.Send(ctx, s.pipe, cmd, s.uploadAttachment)
}

// ListAttachments returns the attachments of an expense, oldest first
func (s *ExpenseService) ListAttachments(ctx context.Context, q ListAttachmentsQuery) ([]AttachmentResponse, error) {
	return pipeline.Send(ctx, s.pipe, q, s.listAttachments)
}

// DownloadAttachment opens the content of an attachment
func (s *ExpenseService) DownloadAttachment(ctx context.Context, q DownloadAttachmentQuery) (*AttachmentContent, error) {
	return pipeline.Send(ctx, s.pipe, q, s.downloadAttachment)
}

// DeleteAttachment removes an attachment; its file is removed once the deletion has committed
func (s *ExpenseService) DeleteAttachment(ctx context.Context, cmd DeleteAttachmentCommand) error {
	key, err := pipeline.Send(ctx, s.pipe, cmd, s.deleteAttachment)
	if err != nil {
		return err
	}
	s.removeObjects(ctx, key)
	return nil
}

func (s *ExpenseService) uploadAttachment(ctx context.Context, cmd UploadAttachmentCommand) (*AttachmentResponse, error) {
	if _, err := s.find(ctx, cmd.ExpenseID); err != nil {
		return nil, err
	}
	a, err := expense.NewAttachment(cmd.ExpenseID, cmd.FileName, cmd.ContentType, cmd.Size, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.storage.Put(ctx, a.StoragePath, cmd.Content, a.SizeBytes, a.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	if err := s.attachments.Save(ctx, a); err != nil {
		s.removeObjects(ctx, a.StoragePath)
		return nil, err
	}

	resp := toAttachmentResponse(*a)
	return &resp, nil
}

func (s *ExpenseService) listAttachments(ctx context.Context, q ListAttachmentsQuery) ([]AttachmentResponse, error) {
	if _, err := s.find(ctx, q.ExpenseID); err != nil {
		return nil, err
	}
	attachments, err := s.attachments.FindByExpense(ctx, q.ExpenseID)
	if err != nil {
		return nil, err
	}
	items := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		items = append(items, toAttachmentResponse(a))
	}
	return items, nil
}

func (s *ExpenseService) downloadAttachment(ctx context.Context, q DownloadAttachmentQuery) (*AttachmentContent, error) {
	a, err := s.findAttachment(ctx, q.ExpenseID, q.AttachmentID)
	if err != nil {
		return nil, err
	}
	body, err := s.storage.Get(ctx, a.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return &AttachmentContent{
		AttachmentResponse: toAttachmentResponse(*a),
		Body:               body,
	}, nil
}

func (s *ExpenseService) deleteAttachment(ctx context.Context, cmd DeleteAttachmentCommand) (string, error) {
	a, err := s.findAttachment(ctx, cmd.ExpenseID, cmd.AttachmentID)
	if err != nil {
		return "", err
	}
	if err := s.attachments.Delete(ctx, a.ID); err != nil {
		return "", err
	}
	return a.StoragePath, nil
}

// findAttachment loads an attachment and checks it belongs to the expense
func (s *ExpenseService) findAttachment(ctx context.Context, expenseID, attachmentID uuid.UUID) (*expense.Attachment, error) {
	a, err := s.attachments.FindByID(ctx, attachmentID)
	if errors.Is(err, shared.ErrNotFound) || (err == nil && a.ExpenseID != expenseID) {
		return nil, shared.NotFound(expense.AttachmentEntityName, attachmentID)
	}
	return a, err
}
