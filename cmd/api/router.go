package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/snackschicken/delivery-api/docs"
	"github.com/snackschicken/delivery-api/internal/apperr"
	"github.com/snackschicken/delivery-api/internal/auth"
	"github.com/snackschicken/delivery-api/internal/config"
	"github.com/snackschicken/delivery-api/internal/httpx"
	"github.com/snackschicken/delivery-api/internal/order"
	"github.com/snackschicken/delivery-api/internal/product"
	"github.com/snackschicken/delivery-api/internal/stats"
	"github.com/snackschicken/delivery-api/internal/user"
)

type deps struct {
	cfg      config.Config
	products *product.Service
	orders   *order.Service
	stats    *stats.Service
	users    user.Repository
	tokens   *auth.JWT
	authn    auth.Authenticator
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := httpx.RequireAuth(d.authn)

	// public storefront
	r.GET("/products", listProductsHandler(d.products))
	r.GET("/products/:id", getProductHandler(d.products))
	r.GET("/products/category/:category", listByCategoryHandler(d.products))
	r.POST("/orders", createOrderHandler(d.orders))

	// admin
	r.POST("/products", authed, createProductHandler(d.products))
	r.PUT("/products/:id", authed, updateProductHandler(d.products))
	r.DELETE("/products/:id", authed, deleteProductHandler(d.products))
	r.GET("/orders", authed, listOrdersHandler(d.orders))
	r.GET("/orders/:id", authed, getOrderHandler(d.orders))
	r.PUT("/orders/:id/status", authed, updateOrderStatusHandler(d.orders))
	r.GET("/stats", authed, statsHandler(d.stats))

	// auth
	r.POST("/auth/login", loginHandler(d.cfg, d.tokens, d.users))
	r.POST("/auth/logout", logoutHandler())
	r.GET("/auth/user", authed, currentUserHandler(d.users))

	return r
}

// writeError maps the service error taxonomy onto the HTTP contract.
func writeError(c *gin.Context, err error) {
	var v *apperr.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": v.Fields})
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
