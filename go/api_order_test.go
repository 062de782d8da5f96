package ordersserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service := orderapp.NewStoreService(ordermemory.NewRepository())
	return NewRouter(ApiHandleFunctions{OrderAPI: NewOrderAPI(service)})
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const chairJSON = `{"title":"Chair","description":"Office chair","quantity":2,"price":89.99,"orderDate":"2024-01-05","deliveryDate":"2024-01-10"}`

func TestHome(t *testing.T) {
	rec := perform(newTestRouter(t), http.MethodGet, "/api/orders/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order API Demo", rec.Body.String())
}

func TestAddOrder_AssignsIDAndPlaced(t *testing.T) {
	router := newTestRouter(t)

	rec := perform(router, http.MethodPost, "/api/orders/add",
		`{"id":99,"status":"DELIVERED","title":"Chair","description":"Office chair","quantity":2,"price":89.99,"orderDate":"2024-01-05","deliveryDate":"2024-01-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "PLACED", created["status"])
	assert.Equal(t, "2024-01-05", created["orderDate"])

	rec = perform(router, http.MethodGet, "/api/orders/all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Chair", list[0]["title"])
}

func TestListOrders_EmptyIsArray(t *testing.T) {
	rec := perform(newTestRouter(t), http.MethodGet, "/api/orders/all", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAddOrder_RejectsDeliveryBeforeOrder(t *testing.T) {
	rec := perform(newTestRouter(t), http.MethodPost, "/api/orders/add",
		`{"title":"Chair","description":"Office chair","quantity":1,"price":1,"orderDate":"2024-01-10","deliveryDate":"2024-01-05"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	assert.Contains(t, problem.Fields, "deliveryDate")
}

func TestAddOrder_MalformedBody(t *testing.T) {
	rec := perform(newTestRouter(t), http.MethodPost, "/api/orders/add", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeBadRequest, decode[apierrors.ProblemDetail](t, rec).Type)
}

func TestUpdateOrder(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, perform(router, http.MethodPost, "/api/orders/add", chairJSON).Code)

	rec := perform(router, http.MethodPut, "/api/orders/update/1",
		`{"id":1,"title":"Armchair","description":"Leather","quantity":1,"price":450,"orderDate":"2024-01-05","deliveryDate":null,"status":"PROCESSING"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, "Armchair", updated["title"])
	assert.Equal(t, "PROCESSING", updated["status"])
	assert.Nil(t, updated["deliveryDate"])

	rec = perform(router, http.MethodPut, "/api/orders/update/5", chairJSON)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = perform(router, http.MethodPut, "/api/orders/update/1",
		`{"title":"Armchair","description":"Leather","status":"LOST"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus_OnlyStatusChanges(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, perform(router, http.MethodPost, "/api/orders/add", chairJSON).Code)

	rec := perform(router, http.MethodPut, "/api/orders/updatestatus/1",
		`{"id":1,"title":"Ignored","description":"Ignored","status":"SHIPPED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, "SHIPPED", updated["status"])
	assert.Equal(t, "Chair", updated["title"])
}

func TestGetAndDelete(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, perform(router, http.MethodPost, "/api/orders/add", chairJSON).Code)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/orders/get/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, perform(router, http.MethodGet, "/api/orders/get/abc", "").Code)

	rec := perform(router, http.MethodDelete, "/api/orders/delete/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order with ID 1 deleted successfully", rec.Body.String())

	rec = perform(router, http.MethodGet, "/api/orders/get/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeNotFound, decode[apierrors.ProblemDetail](t, rec).Type)

	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/api/orders/delete/1", "").Code)
}
