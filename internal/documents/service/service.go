package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avtostart/avtostart-backend/internal/documents"
	"github.com/avtostart/avtostart-backend/internal/documents/repository"
	"github.com/avtostart/avtostart-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound signals that a document id does not resolve.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidCategory signals a category outside the known set on a write.
	ErrInvalidCategory = errors.New("unknown document category")
)

// CreateInput carries the caller-supplied fields of a new document.
type CreateInput struct {
	Title       string
	Description string
	Category    documents.Category
	Status      documents.Status
	ExpiryDate  *time.Time
	FileURL     string
	FileName    string
	FileSize    int64
}

// Service defines the document registry operations used by the handler layer.
type Service interface {
	// ListAll groups every document by known category, most recent upload
	// first. Stored categories outside the known set are excluded from
	// the grouped view.
	ListAll(ctx context.Context) (documents.Grouped, error)
	// ListByCategory returns documents whose stored category equals cat
	// verbatim; no allowlist is applied here.
	ListByCategory(ctx context.Context, cat string) ([]*documents.Document, error)
	GetByID(ctx context.Context, id string) (*documents.Document, error)
	Create(ctx context.Context, in CreateInput) (*documents.Document, error)
	Update(ctx context.Context, id string, upd *documents.Update) (*documents.Document, error)
	Delete(ctx context.Context, id string) (*documents.Document, error)
	// Search matches q case-insensitively against title, description and
	// category. An empty query matches every document.
	Search(ctx context.Context, q string) ([]*documents.Document, error)
	Stats(ctx context.Context) (*documents.Stats, error)
}

type registryService struct {
	repo repository.Repository
}

// New returns a Service on top of the given record store adapter.
func New(repo repository.Repository) Service {
	return &registryService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(col))
}

func (s *registryService) ListAll(ctx context.Context) (documents.Grouped, error) {
	all, err := s.repo.Find(ctx, repository.Filter{})
	if err != nil {
		logger.Errorf("list documents: %v", err)
		return nil, fmt.Errorf("list documents: %w", err)
	}
	grouped := documents.Grouped{}
	for _, cat := range documents.KnownCategories() {
		grouped[cat] = []*documents.Document{}
	}
	for _, d := range all {
		if !d.Category.Known() {
			continue
		}
		grouped[d.Category] = append(grouped[d.Category], d)
	}
	return grouped, nil
}

func (s *registryService) ListByCategory(ctx context.Context, cat string) ([]*documents.Document, error) {
	out, err := s.repo.Find(ctx, repository.Filter{Category: cat})
	if err != nil {
		logger.Errorf("list documents by category %q: %v", cat, err)
		return nil, fmt.Errorf("list documents by category: %w", err)
	}
	return out, nil
}

func (s *registryService) GetByID(ctx context.Context, id string) (*documents.Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.Errorf("get document %s: %v", id, err)
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (s *registryService) Create(ctx context.Context, in CreateInput) (*documents.Document, error) {
	if !in.Category.Known() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	status := in.Status
	if status == "" {
		status = documents.StatusActive
	}
	now := time.Now().UTC()
	d := &documents.Document{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      status,
		UploadDate:  now,
		LastUpdate:  now,
		ExpiryDate:  in.ExpiryDate,
		FileURL:     in.FileURL,
		FileName:    in.FileName,
		FileSize:    in.FileSize,
	}
	stored, err := s.repo.Insert(ctx, d)
	if err != nil {
		logger.Errorf("create document: %v", err)
		return nil, fmt.Errorf("create document: %w", err)
	}
	return stored, nil
}

func (s *registryService) Update(ctx context.Context, id string, upd *documents.Update) (*documents.Document, error) {
	if upd.Category != nil && !upd.Category.Known() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, *upd.Category)
	}
	d, err := s.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.Errorf("update document %s: %v", id, err)
		return nil, fmt.Errorf("update document: %w", err)
	}
	return d, nil
}

func (s *registryService) Delete(ctx context.Context, id string) (*documents.Document, error) {
	d, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.Errorf("delete document %s: %v", id, err)
		return nil, fmt.Errorf("delete document: %w", err)
	}
	return d, nil
}

func (s *registryService) Search(ctx context.Context, q string) ([]*documents.Document, error) {
	all, err := s.repo.Find(ctx, repository.Filter{})
	if err != nil {
		logger.Errorf("search documents: %v", err)
		return nil, fmt.Errorf("search documents: %w", err)
	}
	needle := strings.ToLower(q)
	out := []*documents.Document{}
	for _, d := range all {
		if strings.Contains(strings.ToLower(d.Title), needle) ||
			strings.Contains(strings.ToLower(d.Description), needle) ||
			strings.Contains(strings.ToLower(string(d.Category)), needle) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *registryService) Stats(ctx context.Context) (*documents.Stats, error) {
	total, err := s.repo.Count(ctx, repository.Filter{})
	if err != nil {
		logger.Errorf("count documents: %v", err)
		return nil, fmt.Errorf("count documents: %w", err)
	}
	active, err := s.repo.Count(ctx, repository.Filter{Status: documents.StatusActive})
	if err != nil {
		logger.Errorf("count active documents: %v", err)
		return nil, fmt.Errorf("count active documents: %w", err)
	}
	byCat, err := s.repo.CountByCategory(ctx)
	if err != nil {
		logger.Errorf("count documents by category: %v", err)
		return nil, fmt.Errorf("count documents by category: %w", err)
	}
	return &documents.Stats{
		TotalDocuments:  total,
		ActiveDocuments: active,
		ByCategory:      byCat,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}
