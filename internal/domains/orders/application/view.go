package application

import (
	"context"
	"io"
	"log/slog"
)

// User-facing banner texts. Gateway failure details never reach the banner.
const (
	MsgLoadFailed       = "Failed to load orders."
	MsgSaveFailed       = "Something went wrong while saving the order."
	MsgDeleteFailed     = "Failed to delete order."
	MsgStatusFailed     = "Failed to update order status."
	MsgDateOrder        = "Delivery date cannot be before order date."
	MsgInvalidForm      = "Please check the order details and try again."
	MsgOrderAdded       = "Order added successfully!"
	MsgOrderUpdated     = "Order updated successfully!"
	MsgOrderDeleted     = "Order deleted successfully!"
	DeleteConfirmPrompt = "Are you sure you want to delete this order?"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	if f == nil {
		return false
	}
	return f(ctx, prompt)
}

// StatusPath selects the gateway operation used for board transitions.
type StatusPath int

const (
	// StatusPathTargeted sends transitions to the status-only endpoint.
	StatusPathTargeted StatusPath = iota
	// StatusPathUpdate sends transitions through the generic full update.
	StatusPathUpdate
)

type viewOptions struct {
	logger     *slog.Logger
	statusPath StatusPath
}

// ViewOption configures a view model.
type ViewOption func(*viewOptions)

// WithLogger injects the logger used to record gateway failures.
func WithLogger(logger *slog.Logger) ViewOption {
	return func(o *viewOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStatusPath picks how the board submits status transitions.
func WithStatusPath(path StatusPath) ViewOption {
	return func(o *viewOptions) {
		o.statusPath = path
	}
}

func buildOptions(opts []ViewOption) viewOptions {
	o := viewOptions{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		statusPath: StatusPathTargeted,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func logFailure(ctx context.Context, logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
