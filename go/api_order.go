package ordersserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders store service.
type OrderAPI struct {
	service orderports.StoreService
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.StoreService) OrderAPI {
	return OrderAPI{service: service}
}

// Get /api/orders/
func (api *OrderAPI) Home(c *gin.Context) {
	c.String(http.StatusOK, "Order API Demo")
}

// Get /api/orders/all
// Lists every order by ascending id
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.List(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderList(orders))
}

// Get /api/orders/get/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Post /api/orders/add
// Creates an order; the store assigns id and the PLACED status
func (api *OrderAPI) AddOrder(c *gin.Context) {
	var payload ordermapper.OrderDraft
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	created, err := api.service.Create(c.Request.Context(), ordermapper.ToDomainDraft(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(created))
}

// Put /api/orders/update/:id
// Replaces the editable fields of an order
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload ordermapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, ordermapper.ToDomainOrder(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// Put /api/orders/updatestatus/:id
// Changes only the status; other fields of the body are ignored
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload ordermapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	updated, err := api.service.UpdateStatus(c.Request.Context(), id, domain.Status(payload.Status))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// Delete /api/orders/delete/:id
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("Order with ID %d deleted successfully", id))
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responder.BadRequest(c, fmt.Sprintf("invalid order id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}
