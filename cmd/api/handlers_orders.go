package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackschicken/delivery-api/internal/order"
	"github.com/snackschicken/delivery-api/internal/stats"
)

// createOrderHandler godoc
// @Summary Place an order (checkout)
// @Tags orders
// @Accept json
// @Produce json
// @Param order body order.CreateOrderRequest true "cart and customer data"
// @Success 201 {object} order.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
			return
		}
		o, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// listOrdersHandler godoc
// @Summary List all orders with items (admin)
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} order.OrderWithItems
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.ListWithItems(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// getOrderHandler godoc
// @Summary Get one order with items (admin)
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} order.OrderWithItems
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// updateOrderStatusHandler godoc
// @Summary Update order status (admin)
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param status body order.UpdateStatusRequest true "new status"
// @Success 200 {object} order.Order
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [put]
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
			return
		}
		o, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// statsHandler godoc
// @Summary Today's dashboard stats (admin)
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} stats.Today
// @Failure 401 {object} map[string]string
// @Router /stats [get]
func statsHandler(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.GetToday(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
