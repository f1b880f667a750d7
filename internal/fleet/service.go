package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avtostart/avtostart-backend/pkg/logger"
)

// ErrValidation signals missing required vehicle fields.
var ErrValidation = errors.New("invalid vehicle")

// CreateInput carries the caller-supplied fields of a new vehicle.
type CreateInput struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	Year            int    `json:"year"`
	PlateNumber     string `json:"plateNumber"`
	Transmission    string `json:"transmission"`
	LicenseCategory string `json:"licenseCategory"`
	Status          string `json:"status"`
	ImageURL        string `json:"imageUrl"`
}

// Service owns the vehicle lifecycle for the training fleet.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

func (s *Service) List(ctx context.Context) ([]*Vehicle, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		logger.Errorf("list vehicles: %v", err)
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Errorf("get vehicle %s: %v", id, err)
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Vehicle, error) {
	if in.Brand == "" || in.Model == "" {
		return nil, fmt.Errorf("%w: brand and model are required", ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = "active"
	}
	now := time.Now().UTC()
	v := &Vehicle{
		Brand:           in.Brand,
		Model:           in.Model,
		Year:            in.Year,
		PlateNumber:     in.PlateNumber,
		Transmission:    in.Transmission,
		LicenseCategory: in.LicenseCategory,
		Status:          status,
		ImageURL:        in.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	stored, err := s.repo.Insert(ctx, v)
	if err != nil {
		logger.Errorf("create vehicle: %v", err)
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return stored, nil
}

func (s *Service) Update(ctx context.Context, id string, upd *Update) (*Vehicle, error) {
	v, err := s.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Errorf("update vehicle %s: %v", id, err)
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*Vehicle, error) {
	v, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		logger.Errorf("delete vehicle %s: %v", id, err)
		return nil, fmt.Errorf("delete vehicle: %w", err)
	}
	return v, nil
}
