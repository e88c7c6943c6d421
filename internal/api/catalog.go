package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/service"
)

func (h *Handler) ListProducts(c *gin.Context) {
	sort, err := service.ToProductSort(c.Query("sort"))
	if err != nil {
		writeError(c, err)
		return
	}

	products, err := h.catalog.List(c.Request.Context(), service.ProductQuery{
		Category: c.Query("category"),
		Sort:     sort,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()

	product, err := h.catalog.Get(ctx, productID)
	if err != nil {
		writeError(c, err)
		return
	}

	related, err := h.catalog.Related(ctx, productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productDetailResponse{
		productResponse: toProductResponse(product),
		Related:         toProductResponses(related),
	})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}

	return id, nil
}
