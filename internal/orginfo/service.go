package orginfo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/avtostart/avtostart-backend/pkg/logger"
)

var (
	// ErrNotFound signals that no basic-info record exists yet.
	ErrNotFound = errors.New("organizational info not found")
	// ErrValidation signals missing required fields on the first record.
	ErrValidation = errors.New("invalid organizational info")
)

const defaultHistoryLimit = 10

// UpdateInput carries caller-supplied basic-info fields. Empty values mean
// "no change requested": they never clear a stored value (see merge).
type UpdateInput struct {
	FullName      string       `json:"fullName"`
	ShortName     string       `json:"shortName"`
	FoundedDate   string       `json:"foundedDate"`
	LegalAddress  string       `json:"legalAddress"`
	ActualAddress string       `json:"actualAddress"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Website       string       `json:"website"`
	Founder       Founder      `json:"founder"`
	WorkSchedule  WorkSchedule `json:"workSchedule"`
	Branches      []Branch     `json:"branches"`
}

// Service owns the basic-info singleton lifecycle: latest-wins reads and
// append-only updates with queryable history.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Get returns the current (most recently updated) record.
func (s *Service) Get(ctx context.Context) (*Info, error) {
	info, err := s.repo.Latest(ctx)
	if err != nil {
		logger.Errorf("get organizational info: %v", err)
		return nil, fmt.Errorf("get organizational info: %w", err)
	}
	if info == nil {
		return nil, ErrNotFound
	}
	return info, nil
}

// pick implements the first-truthy-wins merge: a provided empty value keeps
// the stored one. A caller therefore cannot clear a field to empty; the
// behavior is kept for compatibility with the existing API.
func pick(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

// Update appends a new record merged from the current one and the input.
// The first-ever update creates the initial record and requires fullName
// and shortName. lastUpdated and updatedBy are always stamped.
func (s *Service) Update(ctx context.Context, in UpdateInput, updatedBy string) (*Info, error) {
	current, err := s.repo.Latest(ctx)
	if err != nil {
		logger.Errorf("load organizational info: %v", err)
		return nil, fmt.Errorf("load organizational info: %w", err)
	}

	if current == nil {
		if in.FullName == "" || in.ShortName == "" {
			return nil, fmt.Errorf("%w: fullName and shortName are required for the first record", ErrValidation)
		}
		current = &Info{}
	}

	next := &Info{
		FullName:      pick(in.FullName, current.FullName),
		ShortName:     pick(in.ShortName, current.ShortName),
		FoundedDate:   pick(in.FoundedDate, current.FoundedDate),
		LegalAddress:  pick(in.LegalAddress, current.LegalAddress),
		ActualAddress: pick(in.ActualAddress, current.ActualAddress),
		Phone:         pick(in.Phone, current.Phone),
		Email:         pick(in.Email, current.Email),
		Website:       pick(in.Website, current.Website),
		Founder: Founder{
			Name:    pick(in.Founder.Name, current.Founder.Name),
			Address: pick(in.Founder.Address, current.Founder.Address),
			Phone:   pick(in.Founder.Phone, current.Founder.Phone),
			Email:   pick(in.Founder.Email, current.Founder.Email),
			Website: pick(in.Founder.Website, current.Founder.Website),
		},
		WorkSchedule: WorkSchedule{
			Weekdays: pick(in.WorkSchedule.Weekdays, current.WorkSchedule.Weekdays),
			Saturday: pick(in.WorkSchedule.Saturday, current.WorkSchedule.Saturday),
			Sunday:   pick(in.WorkSchedule.Sunday, current.WorkSchedule.Sunday),
			Break:    pick(in.WorkSchedule.Break, current.WorkSchedule.Break),
		},
		Branches:    current.Branches,
		LastUpdated: time.Now().UTC(),
		UpdatedBy:   updatedBy,
	}
	if len(in.Branches) > 0 {
		next.Branches = in.Branches
	}

	stored, err := s.repo.Insert(ctx, next)
	if err != nil {
		logger.Errorf("update organizational info: %v", err)
		return nil, fmt.Errorf("update organizational info: %w", err)
	}
	return stored, nil
}

// History returns one page of update summaries, newest first. Non-positive
// page or limit fall back to page 1 and the default page size.
func (s *Service) History(ctx context.Context, page, limit int) (*HistoryPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, total, err := s.repo.History(ctx, page, limit)
	if err != nil {
		logger.Errorf("organizational info history: %v", err)
		return nil, fmt.Errorf("organizational info history: %w", err)
	}
	return &HistoryPage{
		Entries: entries,
		Meta: PageMeta{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int64(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}
