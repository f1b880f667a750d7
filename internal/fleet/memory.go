package fleet

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory implementation for unit tests and
// store-less startup.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Vehicle
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Vehicle)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*Vehicle{}
	for _, v := range r.store {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.store[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Insert(ctx context.Context, v *Vehicle) (*Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	cp := *v
	r.store[v.ID] = &cp
	return v, nil
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id string, upd *Update) (*Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Brand != nil {
		v.Brand = *upd.Brand
	}
	if upd.Model != nil {
		v.Model = *upd.Model
	}
	if upd.Year != nil {
		v.Year = *upd.Year
	}
	if upd.PlateNumber != nil {
		v.PlateNumber = *upd.PlateNumber
	}
	if upd.Transmission != nil {
		v.Transmission = *upd.Transmission
	}
	if upd.LicenseCategory != nil {
		v.LicenseCategory = *upd.LicenseCategory
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.ImageURL != nil {
		v.ImageURL = *upd.ImageURL
	}
	v.UpdatedAt = time.Now().UTC()
	cp := *v
	return &cp, nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) (*Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.store, id)
	cp := *v
	return &cp, nil
}
