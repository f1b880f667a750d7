package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avtostart/avtostart-backend/internal/documents"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used for unit tests and for running
// the service without a MongoDB instance.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*documents.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*documents.Document)}
}

func matches(d *documents.Document, f Filter) bool {
	if f.Category != "" && string(d.Category) != f.Category {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	return true
}

// copyDoc guards callers against aliasing the stored record.
func copyDoc(d *documents.Document) *documents.Document {
	cp := *d
	if d.ExpiryDate != nil {
		t := *d.ExpiryDate
		cp.ExpiryDate = &t
	}
	return &cp
}

func (m *MemoryRepo) Find(ctx context.Context, f Filter) ([]*documents.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*documents.Document{}
	for _, d := range m.store {
		if matches(d, f) {
			out = append(out, copyDoc(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadDate.Equal(out[j].UploadDate) {
			return out[i].UploadDate.After(out[j].UploadDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id string) (*documents.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return copyDoc(d), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Insert(ctx context.Context, d *documents.Document) (*documents.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
	m.store[d.ID] = copyDoc(d)
	return copyDoc(d), nil
}

func (m *MemoryRepo) UpdateByID(ctx context.Context, id string, upd *documents.Update) (*documents.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Title != nil {
		d.Title = *upd.Title
	}
	if upd.Description != nil {
		d.Description = *upd.Description
	}
	if upd.Category != nil {
		d.Category = *upd.Category
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	if upd.ExpiryDate != nil {
		t := *upd.ExpiryDate
		d.ExpiryDate = &t
	}
	if upd.FileURL != nil {
		d.FileURL = *upd.FileURL
	}
	if upd.FileName != nil {
		d.FileName = *upd.FileName
	}
	if upd.FileSize != nil {
		d.FileSize = *upd.FileSize
	}
	d.LastUpdate = time.Now().UTC()
	return copyDoc(d), nil
}

func (m *MemoryRepo) DeleteByID(ctx context.Context, id string) (*documents.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.store, id)
	return copyDoc(d), nil
}

func (m *MemoryRepo) Count(ctx context.Context, f Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, d := range m.store {
		if matches(d, f) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepo) CountByCategory(ctx context.Context) ([]documents.CategoryCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := map[string]int64{}
	for _, d := range m.store {
		counts[string(d.Category)]++
	}
	out := make([]documents.CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, documents.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
