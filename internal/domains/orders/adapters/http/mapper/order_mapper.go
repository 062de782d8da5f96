package mapper

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
)

// Order is the JSON shape of the /api/orders resource.
type Order struct {
	ID           int64       `json:"id,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Quantity     int         `json:"quantity"`
	Price        float64     `json:"price"`
	OrderDate    domain.Date `json:"orderDate"`
	DeliveryDate domain.Date `json:"deliveryDate"`
	Status       string      `json:"status,omitempty"`
}

// UnmarshalJSON decodes an order, accepting a whole quantity written with a
// fraction such as 1.0.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var wire struct {
		plain
		Quantity json.Number `json:"quantity"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	qty, err := wholeQuantity(wire.Quantity)
	if err != nil {
		return err
	}
	*o = Order(wire.plain)
	o.Quantity = qty
	return nil
}

func wholeQuantity(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("quantity %s is not a whole number", n)
	}
	return int(f), nil
}

// OrderDraft is the create payload. It never carries id or status.
type OrderDraft struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Quantity     int         `json:"quantity"`
	Price        float64     `json:"price"`
	OrderDate    domain.Date `json:"orderDate"`
	DeliveryDate domain.Date `json:"deliveryDate"`
}

// ToDomainOrder converts a transport order without validating it; status text is kept verbatim.
func ToDomainOrder(order Order) domain.Order {
	return domain.Order{
		ID:           order.ID,
		Title:        order.Title,
		Description:  order.Description,
		Quantity:     order.Quantity,
		Price:        order.Price,
		OrderDate:    order.OrderDate,
		DeliveryDate: order.DeliveryDate,
		Status:       domain.Status(order.Status),
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:           order.ID,
		Title:        order.Title,
		Description:  order.Description,
		Quantity:     order.Quantity,
		Price:        order.Price,
		OrderDate:    order.OrderDate,
		DeliveryDate: order.DeliveryDate,
		Status:       string(order.Status),
	}
}

// FromDomainOrderList converts a list, always returning a non-nil slice.
func FromDomainOrderList(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

func ToDomainDraft(draft OrderDraft) domain.Draft {
	return domain.Draft{
		Title:        draft.Title,
		Description:  draft.Description,
		Quantity:     draft.Quantity,
		Price:        draft.Price,
		OrderDate:    draft.OrderDate,
		DeliveryDate: draft.DeliveryDate,
	}
}

func FromDomainDraft(draft domain.Draft) OrderDraft {
	return OrderDraft{
		Title:        draft.Title,
		Description:  draft.Description,
		Quantity:     draft.Quantity,
		Price:        draft.Price,
		OrderDate:    draft.OrderDate,
		DeliveryDate: draft.DeliveryDate,
	}
}
