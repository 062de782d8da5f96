package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders for the reference store.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Order, error)
}
