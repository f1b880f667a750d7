package repository

import (
	"context"
	"errors"

	"github.com/avtostart/avtostart-backend/internal/documents"
)

// ErrNotFound is returned when a document id does not resolve.
var ErrNotFound = errors.New("document not found")

// Filter narrows Find and Count. Zero values match everything.
type Filter struct {
	Category string
	Status   documents.Status
}

// Repository is the record store adapter for the document registry. It is
// pure persistence: no domain rules are interpreted here. Every method may
// fail with a storage error, which callers surface as an internal failure.
type Repository interface {
	// Find returns matching documents sorted by uploadDate descending.
	Find(ctx context.Context, f Filter) ([]*documents.Document, error)
	GetByID(ctx context.Context, id string) (*documents.Document, error)
	// Insert persists a new document, assigning an id when empty, and
	// returns the stored record.
	Insert(ctx context.Context, d *documents.Document) (*documents.Document, error)
	// UpdateByID applies the non-nil fields of upd plus the lastUpdate
	// stamp and returns the post-update record.
	UpdateByID(ctx context.Context, id string, upd *documents.Update) (*documents.Document, error)
	// DeleteByID removes the document and returns its last known state.
	DeleteByID(ctx context.Context, id string) (*documents.Document, error)
	Count(ctx context.Context, f Filter) (int64, error)
	// CountByCategory groups documents by stored category value, counts
	// descending.
	CountByCategory(ctx context.Context) ([]documents.CategoryCount, error)
}
