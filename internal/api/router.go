package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/nutshop/internal/service"
)

type Services struct {
	Catalog   *service.Catalog
	Carts     *service.CartStore
	Lifecycle *service.Lifecycle
	Auth      *service.Auth
	Dashboard *service.Dashboard
}

type Options struct {
	// Mode is a gin mode: debug, release or test.
	Mode string
	// SecureCookies marks the cart session cookie Secure.
	SecureCookies bool
}

type Handler struct {
	catalog   *service.Catalog
	carts     *service.CartStore
	lifecycle *service.Lifecycle
	auth      *service.Auth
	dashboard *service.Dashboard
}

func NewHandler(s Services) (*Handler, error) {
	if s.Catalog == nil || s.Carts == nil || s.Lifecycle == nil || s.Auth == nil || s.Dashboard == nil {
		return nil, errors.New("services are not fully configured")
	}

	return &Handler{
		catalog:   s.Catalog,
		carts:     s.Carts,
		lifecycle: s.Lifecycle,
		auth:      s.Auth,
		dashboard: s.Dashboard,
	}, nil
}

func NewRouter(s Services, opts Options) (*gin.Engine, error) {
	h, err := NewHandler(s)
	if err != nil {
		return nil, err
	}

	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	r.GET("/ping", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/categories", h.ListCategories)
		v1.GET("/products/:id", h.GetProduct)
	}

	cart := v1.Group("", cartSession(opts.SecureCookies))
	{
		cart.GET("/cart", h.ViewCart)
		cart.POST("/cart", h.AddToCart)
		cart.DELETE("/cart", h.ClearCart)
		cart.PUT("/cart/lines/:lineID", h.SetLineQuantity)
		cart.DELETE("/cart/lines/:lineID", h.RemoveLine)
		cart.POST("/checkout", h.Checkout)
	}

	v1.POST("/admin/login", h.Login)

	admin := v1.Group("/admin", requireAdmin(h.auth))
	{
		admin.POST("/logout", h.Logout)
		admin.GET("/session", h.CurrentSession)
		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		admin.GET("/stats", h.Stats)
	}

	return r, nil
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
