package orginfo

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an append-only in-memory implementation used for unit
// tests and store-less startup.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*Info
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// sortedDesc returns the records newest first without mutating the log.
// Records are appended in insertion order, so the copy is reversed before
// the stable sort: equal timestamps resolve to the later insert.
func (r *MemoryRepository) sortedDesc() []*Info {
	out := make([]*Info, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out
}

func (r *MemoryRepository) Latest(ctx context.Context) (*Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.records) == 0 {
		return nil, nil
	}
	latest := *r.sortedDesc()[0]
	return &latest, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, info *Info) (*Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info.ID == "" {
		info.ID = primitive.NewObjectID().Hex()
	}
	cp := *info
	r.records = append(r.records, &cp)
	return info, nil
}

func (r *MemoryRepository) History(ctx context.Context, page, limit int) ([]Summary, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sortedDesc()
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	out := []Summary{}
	for _, rec := range all[start:end] {
		out = append(out, Summary{
			FullName:    rec.FullName,
			ShortName:   rec.ShortName,
			LastUpdated: rec.LastUpdated,
			UpdatedBy:   rec.UpdatedBy,
		})
	}
	return out, total, nil
}
