package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackschicken/delivery-api/internal/product"
)

// listProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} product.Product
// @Router /products [get]
func listProductsHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// getProductHandler godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} product.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func getProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// listByCategoryHandler godoc
// @Summary List active products of a category
// @Tags products
// @Produce json
// @Param category path string true "burgers or combos"
// @Success 200 {array} product.Product
// @Router /products/category/{category} [get]
func listByCategoryHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// createProductHandler godoc
// @Summary Create a product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body product.CreateProductRequest true "product"
// @Success 201 {object} product.Product
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /products [post]
func createProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
			return
		}
		p, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary Update a product (partial)
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param product body product.UpdateProductRequest true "fields to change"
// @Success 200 {object} product.Product
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func updateProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path string true "product id"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func deleteProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
