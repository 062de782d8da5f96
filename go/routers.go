package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the API groups served by the router.
type ApiHandleFunctions struct {
	OrderAPI OrderAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, middleware...)
}

// NewRouterWithGinEngine adds the order routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router.Use(gin.Recovery())
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	api := &handleFunctions.OrderAPI
	return []Route{
		{"Home", http.MethodGet, "/api/orders/", api.Home},
		{"ListOrders", http.MethodGet, "/api/orders/all", api.ListOrders},
		{"GetOrder", http.MethodGet, "/api/orders/get/:id", api.GetOrder},
		{"AddOrder", http.MethodPost, "/api/orders/add", api.AddOrder},
		{"UpdateOrder", http.MethodPut, "/api/orders/update/:id", api.UpdateOrder},
		{"UpdateOrderStatus", http.MethodPut, "/api/orders/updatestatus/:id", api.UpdateOrderStatus},
		{"DeleteOrder", http.MethodDelete, "/api/orders/delete/:id", api.DeleteOrder},
	}
}
