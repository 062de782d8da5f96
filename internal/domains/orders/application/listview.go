package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// Mode is the list view form state.
type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeEditing Mode = "editing"
)

// Form field names accepted by SetField.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldOrderDate    = "orderDate"
	FieldDeliveryDate = "deliveryDate"
	FieldQuantity     = "quantity"
	FieldPrice        = "price"
)

// FormFields lists the editable form fields in display order.
var FormFields = []string{FieldTitle, FieldDescription, FieldOrderDate, FieldDeliveryDate, FieldQuantity, FieldPrice}

// ListView is the view model behind the searchable order table and its create/edit form.
// It is not safe for concurrent use; callers serialise events per view instance.
type ListView struct {
	gateway ports.Gateway
	opts    viewOptions

	orders   []domain.Order
	filtered []domain.Order
	query    string
	form     domain.Order
	editing  *domain.Order
	errMsg   string
	okMsg    string
}

// ListSnapshot is an immutable copy of the list view state for rendering.
type ListSnapshot struct {
	Mode    Mode
	Form    domain.Order
	Rows    []domain.Order
	Total   int
	Query   string
	Error   string
	Success string
}

func NewListView(gateway ports.Gateway, opts ...ViewOption) *ListView {
	return &ListView{
		gateway:  gateway,
		opts:     buildOptions(opts),
		orders:   []domain.Order{},
		filtered: []domain.Order{},
	}
}

// Load replaces the local collection with the store's and re-applies the current query.
// On failure the previous collection stays in place and the load error replaces
// any pending success banner, including the one set by a preceding mutation.
func (v *ListView) Load(ctx context.Context) error {
	orders, err := v.gateway.ListAll(ctx)
	if err != nil {
		logFailure(ctx, v.opts.logger, "error loading orders", err)
		v.okMsg = ""
		v.errMsg = MsgLoadFailed
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	v.orders = orders
	v.filtered = filterOrders(orders, v.query)
	return nil
}

// SetField updates one form field from its textual input.
func (v *ListView) SetField(name, value string) error {
	v.clearBanner()
	switch name {
	case FieldTitle:
		v.form.Title = value
	case FieldDescription:
		v.form.Description = value
	case FieldQuantity:
		qty, err := parseQuantity(value)
		if err != nil {
			return v.rejectField(name, err)
		}
		v.form.Quantity = qty
	case FieldPrice:
		price, err := parsePrice(value)
		if err != nil {
			return v.rejectField(name, err)
		}
		v.form.Price = price
	case FieldOrderDate:
		date, err := domain.ParseDate(value)
		if err != nil {
			return v.rejectField(name, err)
		}
		v.form.OrderDate = date
	case FieldDeliveryDate:
		date, err := domain.ParseDate(value)
		if err != nil {
			return v.rejectField(name, err)
		}
		v.form.DeliveryDate = date
	default:
		return v.rejectField(name, errors.New("unknown form field"))
	}
	return nil
}

// Edit enters editing mode with the form populated from the full order.
func (v *ListView) Edit(order domain.Order) {
	selected := order
	v.editing = &selected
	v.form = selected
	v.clearBanner()
}

// EditByID enters editing mode for an order of the loaded collection.
func (v *ListView) EditByID(id int64) error {
	if o, ok := v.Find(id); ok {
		v.Edit(o)
		return nil
	}
	return fmt.Errorf("%w: id %d", ports.ErrNotFound, id)
}

// CancelEdit returns to idle with an empty form.
func (v *ListView) CancelEdit() {
	v.editing = nil
	v.form = domain.Order{}
	v.clearBanner()
}

// Submit validates the form locally, then creates (idle) or updates (editing).
// A rejected date order never reaches the gateway.
func (v *ListView) Submit(ctx context.Context) error {
	if err := v.form.Draft().Validate(); err != nil {
		v.okMsg = ""
		if errors.Is(err, domain.ErrDeliveryBeforeOrder) {
			v.errMsg = MsgDateOrder
		} else {
			v.errMsg = MsgInvalidForm
		}
		return mapViewError(err)
	}

	var success string
	if v.editing != nil {
		id := v.editing.ID
		if _, err := v.gateway.Update(ctx, id, v.form); err != nil {
			logFailure(ctx, v.opts.logger, "error saving order", err, slog.Int64("order.id", id))
			v.okMsg = ""
			v.errMsg = MsgSaveFailed
			return err
		}
		success = MsgOrderUpdated
	} else {
		if _, err := v.gateway.Create(ctx, v.form.Draft()); err != nil {
			logFailure(ctx, v.opts.logger, "error saving order", err)
			v.okMsg = ""
			v.errMsg = MsgSaveFailed
			return err
		}
		success = MsgOrderAdded
	}

	v.editing = nil
	v.form = domain.Order{}
	v.errMsg = ""
	v.okMsg = success
	_ = v.Load(ctx)
	return nil
}

// Search filters the loaded collection locally. It never reloads.
func (v *ListView) Search(query string) {
	v.query = strings.ToLower(query)
	v.filtered = filterOrders(v.orders, v.query)
}

// ClearSearch restores the full loaded collection.
func (v *ListView) ClearSearch() {
	v.Search("")
}

// Delete asks for confirmation, deletes and reloads. It reports whether the
// deletion was attempted and succeeded.
func (v *ListView) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(ctx, DeleteConfirmPrompt) {
		return false, nil
	}
	if err := v.gateway.Delete(ctx, id); err != nil {
		logFailure(ctx, v.opts.logger, "error deleting order", err, slog.Int64("order.id", id))
		v.okMsg = ""
		v.errMsg = MsgDeleteFailed
		return false, err
	}
	v.errMsg = ""
	v.okMsg = MsgOrderDeleted
	_ = v.Load(ctx)
	return true, nil
}

func (v *ListView) Mode() Mode {
	if v.editing != nil {
		return ModeEditing
	}
	return ModeIdle
}

// Snapshot copies the state needed to render the view.
func (v *ListView) Snapshot() ListSnapshot {
	rows := make([]domain.Order, len(v.filtered))
	copy(rows, v.filtered)
	return ListSnapshot{
		Mode:    v.Mode(),
		Form:    v.form,
		Rows:    rows,
		Total:   len(v.orders),
		Query:   v.query,
		Error:   v.errMsg,
		Success: v.okMsg,
	}
}

// Find returns an order of the loaded collection, ignoring the search filter.
func (v *ListView) Find(id int64) (domain.Order, bool) {
	for _, o := range v.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// DismissBanner drops the current success or error message once it has been shown.
func (v *ListView) DismissBanner() {
	v.clearBanner()
}

func (v *ListView) clearBanner() {
	v.errMsg = ""
	v.okMsg = ""
}

func (v *ListView) rejectField(name string, err error) error {
	v.errMsg = MsgInvalidForm
	return fmt.Errorf("%w: %s: %w", ports.ErrValidation, name, err)
}

func filterOrders(orders []domain.Order, query string) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Matches(query) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

func parseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidQuantity
	}
	return qty, nil
}

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.ErrInvalidPrice
	}
	return price, nil
}
