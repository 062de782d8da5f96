package application

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// StoreService orchestrates the reference order store use cases.
type StoreService struct {
	repo ports.Repository
}

func NewStoreService(repo ports.Repository) *StoreService {
	return &StoreService{repo: repo}
}

func (s *StoreService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *StoreService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Create assigns a fresh id and the PLACED status regardless of what the caller sent.
func (s *StoreService) Create(ctx context.Context, draft domain.Draft) (*domain.Order, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, mapError(err)
	}
	order := domain.Order{Status: domain.StatusPlaced}.ApplyDraft(draft)
	return s.repo.Save(ctx, &order)
}

// Update replaces the editable fields. A valid status in the body is applied too,
// an empty one keeps the stored status.
func (s *StoreService) Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := existing.ApplyDraft(order.Draft().Normalize())
	if order.Status != "" {
		status, err := domain.ParseStatus(string(order.Status))
		if err != nil {
			return nil, mapError(err)
		}
		updated.Status = status
	}
	if err := updated.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, &updated)
}

// UpdateStatus changes only the status of a stored order.
func (s *StoreService) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	parsed, err := domain.ParseStatus(string(status))
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := existing.WithStatus(parsed)
	return s.repo.Save(ctx, &updated)
}

func (s *StoreService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.StoreService = (*StoreService)(nil)
