package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrTitleRequired) ||
		errors.Is(err, domain.ErrDescriptionRequired) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidDate) ||
		errors.Is(err, domain.ErrDeliveryBeforeOrder) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// mapViewError classifies local validation failures the way the gateway classifies
// server-side rejections, so callers can match on ports.ErrValidation either way.
func mapViewError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(mapError(err), ErrInvalidInput) {
		return fmt.Errorf("%w: %w", ports.ErrValidation, err)
	}
	return err
}
