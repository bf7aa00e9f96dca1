package usecases

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// FileStorage is the external blob storage collaborator. Store returns an
// opaque storage path; the workflow never interprets it.
type FileStorage interface {
	Store(ctx context.Context, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, storagePath string) error
}

// CleanupQueue collects storage paths whose best-effort deletion failed so a
// background job can retry them. Metadata removal is the source of truth;
// queueing never fails the triggering operation.
type CleanupQueue interface {
	Enqueue(storagePath string)
}

// Notifier dispatches outbound notifications. Fire and forget: failures are
// logged by the implementation, never propagated to the workflow.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event, message string)
}

// FileUpload is an incoming file as handed over by the transport layer
type FileUpload struct {
	Filename string
	Size     int64
	MimeType string
	Content  io.Reader
}
