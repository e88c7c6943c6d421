package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/nutshop/internal/domain"
)

type addToCartRequest struct {
	ProductID int64             `json:"productId" binding:"required"`
	Tier      domain.WeightTier `json:"tier"`
	Quantity  int               `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) ViewCart(c *gin.Context) {
	summary, err := h.carts.View(c.Request.Context(), cartKey(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(summary))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	if req.Tier != "" {
		if _, err := domain.ToWeightTier(string(req.Tier)); err != nil {
			writeError(c, &domain.ValidationError{Field: "tier", Reason: err.Error()})
			return
		}
	}

	summary, err := h.carts.Add(c.Request.Context(), cartKey(c), req.ProductID, req.Tier, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(summary))
}

func (h *Handler) SetLineQuantity(c *gin.Context) {
	key, err := lineKey(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	summary, err := h.carts.SetQuantity(c.Request.Context(), cartKey(c), key, *req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(summary))
}

func (h *Handler) RemoveLine(c *gin.Context) {
	key, err := lineKey(c)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.carts.Remove(c.Request.Context(), cartKey(c), key)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(summary))
}

func (h *Handler) ClearCart(c *gin.Context) {
	summary, err := h.carts.Clear(c.Request.Context(), cartKey(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartResponse(summary))
}

func (h *Handler) Checkout(c *gin.Context) {
	var info domain.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	receipt, err := h.carts.Checkout(c.Request.Context(), cartKey(c), info)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

func lineKey(c *gin.Context) (domain.LineKey, error) {
	key, err := domain.ParseLineKey(c.Param("lineID"))
	if err != nil {
		return domain.LineKey{}, &domain.ValidationError{Field: "lineId", Reason: err.Error()}
	}

	return key, nil
}
