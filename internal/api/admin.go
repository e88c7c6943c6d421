package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/nutshop/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	session, token, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:   token,
		Session: toSessionResponse(session),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), c.GetString(ctxAdminToken)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CurrentSession(c *gin.Context) {
	session, ok := c.Get(ctxAdminSession)
	if !ok {
		writeError(c, domain.ErrAuth)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(session.(domain.Session)))
}

// ListOrders accepts ?status=a,b and ?search=term.
func (h *Handler) ListOrders(c *gin.Context) {
	var filter domain.OrderFilter

	for _, raw := range strings.Split(c.Query("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		status, err := domain.ToOrderStatus(raw)
		if err != nil {
			writeError(c, &domain.ValidationError{Field: "status", Reason: err.Error()})
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	filter.Search = c.Query("search")

	orders, err := h.dashboard.Orders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	order, err := h.dashboard.Order(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toOrderResponse(order)
	resp.Transitions = h.lifecycle.AvailableTransitions(order)

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	order, err := h.lifecycle.Transition(c.Request.Context(), orderID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toOrderResponse(order)
	resp.Transitions = h.lifecycle.AvailableTransitions(order)

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatsResponse(stats))
}
