package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroom/inventory-api/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	UserHandler    *UserHTTP
	JWTSecret      []byte
	PromGatherer   prometheus.Gatherer
}

func Register(e *echo.Echo, d *Deps) {
	authMW := middleware.NewAuth(d.JWTSecret)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"ok":        true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	if d.PromGatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.PromGatherer, promhttp.HandlerOpts{})))
	}

	auth := e.Group("/api/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/register", d.AuthHandler.Register)

	products := e.Group("/api/products", authMW.RequireAuth)
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	adminProducts := e.Group("/api/products", authMW.RequireAdmin)
	adminProducts.POST("", d.ProductHandler.CreateProduct)
	adminProducts.PUT("/:id", d.ProductHandler.ReplaceProduct)
	adminProducts.PUT("/:id/stock", d.ProductHandler.SetStock)
	adminProducts.PATCH("/:id/stock", d.ProductHandler.AdjustStock)
	adminProducts.DELETE("/:id", d.ProductHandler.DeleteProduct)

	e.GET("/api/stock", d.ProductHandler.GetStock, authMW.RequireAuth)

	users := e.Group("/api/users", authMW.RequireAdmin)
	users.GET("", d.UserHandler.ListUsers)
	users.DELETE("/:id", d.UserHandler.DeleteUser)
}
