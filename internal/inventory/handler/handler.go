package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockroom/stockroom/internal/inventory/service"
	"github.com/stockroom/stockroom/pkg/logger"
)

// Handler exposes the inventory CRUD endpoints over gin.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches the products and orders endpoints to the given
// group. Credential checks are the caller's concern: main wires the group
// behind the API-key middleware, tests usually don't.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.listProducts)
	rg.POST("/products", h.createProduct)
	rg.GET("/products/:id", h.getProduct)
	rg.PUT("/products/:id", h.updateProduct)
	rg.DELETE("/products/:id", h.deleteProduct)

	rg.GET("/orders", h.listOrders)
	rg.POST("/orders", h.createOrder)
	rg.GET("/orders/:id", h.getOrder)
	rg.PUT("/orders/:id", h.updateOrder)
	rg.DELETE("/orders/:id", h.deleteOrder)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.svc.ListProducts()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) createProduct(c *gin.Context) {
	var in service.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.CreateProduct(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var in service.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.UpdateProduct(c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteProduct(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) createOrder(c *gin.Context) {
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	o, err := h.svc.CreateOrder(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) getOrder(c *gin.Context) {
	o, err := h.svc.GetOrder(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) updateOrder(c *gin.Context) {
	var in service.UpdateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	o, err := h.svc.UpdateOrder(c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteOrder(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": msg})
}

// writeError maps service errors onto the response taxonomy: validation
// failures are 400, unknown ids 404, anything else (store I/O, corrupt
// document) a 500 that never leaks internals to the caller.
func writeError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		badRequest(c, ve.Error())
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": err.Error()})
	default:
		logger.Errorf("inventory request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "store operation failed"})
	}
}
