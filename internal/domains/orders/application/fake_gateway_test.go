package application

import (
	"context"
	"sort"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

type gatewayCall struct {
	op    string
	id    int64
	order domain.Order
}

type fakeGateway struct {
	orders map[int64]domain.Order
	nextID int64
	calls  []gatewayCall
	// failures forces an error for the named operation.
	failures map[string]error
}

func newFakeGateway(seed ...domain.Order) *fakeGateway {
	g := &fakeGateway{orders: map[int64]domain.Order{}, failures: map[string]error{}}
	for _, o := range seed {
		g.orders[o.ID] = o
		if o.ID > g.nextID {
			g.nextID = o.ID
		}
	}
	return g
}

func (g *fakeGateway) record(op string, id int64, order domain.Order) error {
	g.calls = append(g.calls, gatewayCall{op: op, id: id, order: order})
	return g.failures[op]
}

func (g *fakeGateway) count(op string) int {
	n := 0
	for _, c := range g.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func (g *fakeGateway) last(op string) (gatewayCall, bool) {
	for i := len(g.calls) - 1; i >= 0; i-- {
		if g.calls[i].op == op {
			return g.calls[i], true
		}
	}
	return gatewayCall{}, false
}

func (g *fakeGateway) ListAll(_ context.Context) ([]domain.Order, error) {
	if err := g.record("list", 0, domain.Order{}); err != nil {
		return nil, err
	}
	list := make([]domain.Order, 0, len(g.orders))
	for _, o := range g.orders {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (g *fakeGateway) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if err := g.record("get", id, domain.Order{}); err != nil {
		return nil, err
	}
	o, ok := g.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &o, nil
}

func (g *fakeGateway) Create(_ context.Context, draft domain.Draft) (*domain.Order, error) {
	if err := g.record("create", 0, domain.Order{}.ApplyDraft(draft)); err != nil {
		return nil, err
	}
	g.nextID++
	o := domain.Order{ID: g.nextID, Status: domain.StatusPlaced}.ApplyDraft(draft)
	g.orders[o.ID] = o
	return &o, nil
}

func (g *fakeGateway) Update(_ context.Context, id int64, order domain.Order) (*domain.Order, error) {
	return g.replace("update", id, order)
}

func (g *fakeGateway) UpdateStatus(_ context.Context, id int64, order domain.Order) (*domain.Order, error) {
	return g.replace("updateStatus", id, order)
}

func (g *fakeGateway) replace(op string, id int64, order domain.Order) (*domain.Order, error) {
	if err := g.record(op, id, order); err != nil {
		return nil, err
	}
	if _, ok := g.orders[id]; !ok {
		return nil, ports.ErrNotFound
	}
	order.ID = id
	g.orders[id] = order
	return &order, nil
}

func (g *fakeGateway) Delete(_ context.Context, id int64) error {
	if err := g.record("delete", id, domain.Order{}); err != nil {
		return err
	}
	if _, ok := g.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.orders, id)
	return nil
}

var _ ports.Gateway = (*fakeGateway)(nil)
