package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-auth/internal/logger"
)

type Handler struct {
	products Store
}

func NewHandler(products Store) *Handler {
	return &Handler{products: products}
}

func (h *Handler) List(c *gin.Context) {
	products, err := h.products.All(c.Request.Context())
	if err != nil {
		logger.Error("failed to list products", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}

	if products == nil {
		products = []Product{}
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (h *Handler) Detail(c *gin.Context) {
	product, err := h.products.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Error("failed to load product", map[string]any{
			"id":    c.Param("id"),
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}

	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}
