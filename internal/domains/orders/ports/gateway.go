package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
)

var (
	// ErrNetwork signals a transport failure before a response arrived.
	ErrNetwork = errors.New("order store unreachable")
	// ErrServer signals a non-success response that is not otherwise classified.
	ErrServer = errors.New("order store error")
	// ErrValidation signals a rejected order shape, locally or by the store.
	ErrValidation = errors.New("order rejected")
)

// Gateway is typed access to the remote order collection. It never retries or caches.
type Gateway interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, draft domain.Draft) (*domain.Order, error)
	Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, order domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
