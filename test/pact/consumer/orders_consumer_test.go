//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-order-dashboard/test/pact"

	orderclient "github.com/Apurer/go-gin-order-dashboard/internal/clients/http/orders"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

func exampleOrder() domain.Order {
	return domain.Order{
		ID:           pacttest.ExistingOrderID,
		Title:        "Standing desk",
		Description:  "Oak top, 160x80",
		Quantity:     2,
		Price:        349.5,
		OrderDate:    domain.NewDate(2024, time.June, 12),
		DeliveryDate: domain.NewDate(2024, time.June, 19),
		Status:       domain.StatusPlaced,
	}
}

func draftMatcher(o domain.Order) matchers.Map {
	return matchers.Map{
		"title":        matchers.Like(o.Title),
		"description":  matchers.Like(o.Description),
		"quantity":     matchers.Like(o.Quantity),
		"price":        matchers.Like(o.Price),
		"orderDate":    matchers.Regex(o.OrderDate.String(), pacttest.DatePattern),
		"deliveryDate": matchers.Regex(o.DeliveryDate.String(), pacttest.DatePattern),
	}
}

func orderMatcher(o domain.Order) matchers.Map {
	m := draftMatcher(o)
	m["id"] = matchers.Like(o.ID)
	m["status"] = matchers.Term(string(o.Status), pacttest.StatusPattern)
	return m
}

func TestOrderDashboardContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	existing := exampleOrder()
	edited := existing
	edited.Quantity = 3
	processing := existing.WithStatus(domain.StatusProcessing)
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	jsonRequest := func(body matchers.Map) func(b *pactconsumer.V2RequestBuilder) {
		return func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(body)
		}
	}
	jsonResponse := func(body any) func(b *pactconsumer.V2ResponseBuilder) {
		return func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(body)
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to list all orders").
		WithRequest("GET", "/api/orders/all").
		WillRespondWith(http.StatusOK, jsonResponse(matchers.ArrayMinLike(orderMatcher(existing), 1)))

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/get/%d", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK, jsonResponse(orderMatcher(existing)))

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/get/%d", pacttest.MissingOrderID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to create an order").
		WithRequest("POST", "/api/orders/add", jsonRequest(draftMatcher(existing))).
		WillRespondWith(http.StatusCreated, jsonResponse(orderMatcher(existing)))

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to update an order").
		WithRequest("PUT", fmt.Sprintf("/api/orders/update/%d", pacttest.ExistingOrderID), jsonRequest(orderMatcher(edited))).
		WillRespondWith(http.StatusOK, jsonResponse(orderMatcher(edited)))

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to move an order to processing").
		WithRequest("PUT", fmt.Sprintf("/api/orders/updatestatus/%d", pacttest.ExistingOrderID), jsonRequest(orderMatcher(processing))).
		WillRespondWith(http.StatusOK, jsonResponse(matchers.Map{
			"id":     matchers.Like(pacttest.ExistingOrderID),
			"title":  matchers.Like(existing.Title),
			"status": matchers.S(string(domain.StatusProcessing)),
		}))

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to delete an order").
		WithRequest("DELETE", fmt.Sprintf("/api/orders/delete/%d", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK)

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client, err := newOrderClient(config)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		list, err := client.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		if len(list) == 0 {
			return errors.New("expected at least one order")
		}

		fetched, err := client.GetByID(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if fetched.ID != pacttest.ExistingOrderID || fetched.OrderDate.IsZero() {
			return fmt.Errorf("unexpected order %+v", fetched)
		}

		if _, err := client.GetByID(ctx, pacttest.MissingOrderID); !errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("expected not found for order %d, got %v", pacttest.MissingOrderID, err)
		}

		created, err := client.Create(ctx, existing.Draft())
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if created.ID == 0 || !created.Status.Valid() {
			return fmt.Errorf("expected id and status on created order, got %+v", created)
		}

		if _, err := client.Update(ctx, pacttest.ExistingOrderID, edited); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		moved, err := client.UpdateStatus(ctx, pacttest.ExistingOrderID, processing)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if moved.Status != domain.StatusProcessing {
			return fmt.Errorf("expected PROCESSING, got %q", moved.Status)
		}

		if err := client.Delete(ctx, pacttest.ExistingOrderID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func newOrderClient(config pactconsumer.MockServerConfig) (*orderclient.Client, error) {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	httpClient := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return orderclient.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port), httpClient)
}
