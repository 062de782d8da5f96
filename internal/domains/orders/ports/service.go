package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
)

// StoreService exposes the order store use cases to the REST adapter.
type StoreService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Order, error)
	Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
