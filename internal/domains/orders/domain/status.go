package domain

import (
	"fmt"
	"strings"
)

// Status enumerates order progression.
type Status string

const (
	StatusPlaced     Status = "PLACED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses returns every status in board column order.
func Statuses() []Status {
	return []Status{StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// ParseStatus normalises case and rejects values outside the enumeration.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
