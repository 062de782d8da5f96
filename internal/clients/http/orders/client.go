// Package orders is the HTTP client for the /api/orders REST contract.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	problems "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

// BasePath is the collection root on the order store host.
const BasePath = "/api/orders"

const maxErrorBody = 4 << 10

// APIError describes a failed call to the order store. It matches one of the
// ports sentinels (ErrNetwork, ErrServer, ErrValidation, ErrNotFound) via errors.Is.
type APIError struct {
	Op         string
	StatusCode int
	Body       string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// Client implements ports.Gateway over HTTP+JSON.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for records the client skips.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

var _ ports.Gateway = (*Client)(nil)

// NewClient builds a gateway client for the store at baseURL (scheme and host,
// optionally a path prefix). A nil httpClient gets an otelhttp transport and no timeout.
func NewClient(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("orders base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse orders base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("orders base URL %q must include scheme and host", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	base, err := url.JoinPath(u.String(), BasePath)
	if err != nil {
		return nil, fmt.Errorf("build orders base URL: %w", err)
	}
	c := &Client{
		base:   base,
		http:   httpClient,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// ListAll fetches the whole collection. A body that is not a JSON array yields
// an empty list; array elements that do not decode as orders are logged and skipped.
func (c *Client) ListAll(ctx context.Context) ([]domain.Order, error) {
	const op = "list orders"
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint("all"), nil)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return []domain.Order{}, nil
	}
	orders := make([]domain.Order, 0, len(items))
	for i, raw := range items {
		var payload mapper.Order
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			err = errors.New("null element")
		} else {
			err = json.Unmarshal(raw, &payload)
		}
		if err != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "skipping undecodable order",
				slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		orders = append(orders, mapper.ToDomainOrder(payload))
	}
	return orders, nil
}

func (c *Client) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return c.exchange(ctx, "get order", http.MethodGet, "get", id, nil)
}

// Create posts the draft; the store assigns id and status.
func (c *Client) Create(ctx context.Context, draft domain.Draft) (*domain.Order, error) {
	const op = "create order"
	body, err := json.Marshal(mapper.FromDomainDraft(draft))
	if err != nil {
		return nil, &APIError{Op: op, kind: ports.ErrValidation, cause: err}
	}
	resp, err := c.do(ctx, op, http.MethodPost, c.endpoint("add"), body)
	if err != nil {
		return nil, err
	}
	return decodeOrder(op, resp)
}

func (c *Client) Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	return c.exchange(ctx, "update order", http.MethodPut, "update", id, &order)
}

// UpdateStatus sends the whole order to the status endpoint.
func (c *Client) UpdateStatus(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	return c.exchange(ctx, "update order status", http.MethodPut, "updatestatus", id, &order)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	const op = "delete order"
	path, err := c.idEndpoint(op, "delete", id)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, op, http.MethodDelete, path, nil)
	return err
}

func (c *Client) exchange(ctx context.Context, op, method, action string, id int64, order *domain.Order) (*domain.Order, error) {
	path, err := c.idEndpoint(op, action, id)
	if err != nil {
		return nil, err
	}
	var body []byte
	if order != nil {
		if body, err = json.Marshal(mapper.FromDomainOrder(order)); err != nil {
			return nil, &APIError{Op: op, kind: ports.ErrValidation, cause: err}
		}
	}
	resp, err := c.do(ctx, op, method, path, body)
	if err != nil {
		return nil, err
	}
	return decodeOrder(op, resp)
}

func (c *Client) endpoint(segments ...string) string {
	return c.base + "/" + strings.Join(segments, "/")
}

func (c *Client) idEndpoint(op, action string, id int64) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", &APIError{Op: op, kind: ports.ErrValidation, cause: err}
	}
	return c.endpoint(action, param), nil
}

func (c *Client) do(ctx context.Context, op, method, target string, body []byte) ([]byte, error) {
	if c == nil || c.http == nil {
		return nil, &APIError{Op: op, kind: ports.ErrNetwork, cause: errors.New("orders client not configured")}
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &APIError{Op: op, kind: ports.ErrNetwork, cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, kind: ports.ErrNetwork, cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, kind: ports.ErrNetwork, cause: err}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, nil
	}
	return nil, &APIError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       errorDetail(payload),
		kind:       classify(resp.StatusCode),
	}
}

func classify(status int) error {
	switch status {
	case http.StatusNotFound:
		return ports.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ports.ErrValidation
	default:
		return ports.ErrServer
	}
}

func errorDetail(body []byte) string {
	if p, ok := problems.Decode(body); ok {
		if p.Detail != "" {
			return p.Detail
		}
		return p.Title
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}

func decodeOrder(op string, body []byte) (*domain.Order, error) {
	var payload mapper.Order
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &APIError{Op: op, kind: ports.ErrServer, cause: fmt.Errorf("decode order: %w", err)}
	}
	order := mapper.ToDomainOrder(payload)
	return &order, nil
}
