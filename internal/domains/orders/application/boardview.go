package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// Card is one order on the board together with the moves it offers.
type Card struct {
	Order   domain.Order
	Actions []domain.Transition
}

// Column holds the cards whose status matches the column.
type Column struct {
	Status domain.Status
	Cards  []Card
}

// Board is a render-ready partition of the collection by status.
type Board struct {
	Columns []Column
	// Unplaced counts orders whose status is outside the enumeration.
	Unplaced int
	Error    string
}

// BoardView is the kanban view model. Every render is derived from the last
// loaded collection; transitions always reload afterwards.
type BoardView struct {
	gateway ports.Gateway
	opts    viewOptions

	orders []domain.Order
	errMsg string
}

func NewBoardView(gateway ports.Gateway, opts ...ViewOption) *BoardView {
	return &BoardView{
		gateway: gateway,
		opts:    buildOptions(opts),
		orders:  []domain.Order{},
	}
}

// Load replaces the local collection. Failures keep the previous one.
func (v *BoardView) Load(ctx context.Context) error {
	orders, err := v.gateway.ListAll(ctx)
	if err != nil {
		logFailure(ctx, v.opts.logger, "error loading orders", err)
		v.errMsg = MsgLoadFailed
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	v.orders = orders
	v.errMsg = ""
	return nil
}

// Board partitions the loaded collection into the five status columns.
func (v *BoardView) Board() Board {
	board := Partition(v.orders)
	board.Error = v.errMsg
	return board
}

// Apply moves an order along the transition named by action, then reloads.
func (v *BoardView) Apply(ctx context.Context, id int64, action domain.Action) error {
	order, ok := v.find(id)
	if !ok {
		v.errMsg = MsgStatusFailed
		return fmt.Errorf("%w: id %d", ports.ErrNotFound, id)
	}
	transition, err := domain.LookupTransition(order.Status, action)
	if err != nil {
		v.errMsg = MsgStatusFailed
		return err
	}

	moved := order.WithStatus(transition.Target)
	if v.opts.statusPath == StatusPathUpdate {
		_, err = v.gateway.Update(ctx, id, moved)
	} else {
		_, err = v.gateway.UpdateStatus(ctx, id, moved)
	}
	if err != nil {
		logFailure(ctx, v.opts.logger, "failed to update order status", err,
			slog.Int64("order.id", id),
			slog.String("status.from", order.Status.String()),
			slog.String("status.to", transition.Target.String()))
		v.errMsg = MsgStatusFailed
		return err
	}
	v.errMsg = ""
	return v.Load(ctx)
}

// DismissBanner drops the current error message once it has been shown.
func (v *BoardView) DismissBanner() {
	v.errMsg = ""
}

func (v *BoardView) find(id int64) (domain.Order, bool) {
	for _, o := range v.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// Partition groups orders by status in board column order, preserving
// collection order inside each column.
func Partition(orders []domain.Order) Board {
	statuses := domain.Statuses()
	index := make(map[domain.Status]int, len(statuses))
	board := Board{Columns: make([]Column, len(statuses))}
	for i, s := range statuses {
		index[s] = i
		board.Columns[i] = Column{Status: s, Cards: []Card{}}
	}
	for _, o := range orders {
		i, ok := index[o.Status]
		if !ok {
			board.Unplaced++
			continue
		}
		board.Columns[i].Cards = append(board.Columns[i].Cards, Card{
			Order:   o,
			Actions: domain.Transitions(o.Status),
		})
	}
	return board
}
