package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abu-huda81/shop_backend/internal/middleware/auth"
	"github.com/abu-huda81/shop_backend/internal/models"
)

type Deps struct {
	UserHandler    *UserHTTP
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	SearchHandler  *SearchHTTP
	Guard          *auth.Guard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	adminOnly := d.Guard.RequireRole(models.RoleAdmin)

	user := e.Group("/user")
	user.POST("/create", d.UserHandler.Create)
	user.POST("/login", d.UserHandler.Login)
	user.GET("/users", d.UserHandler.List, adminOnly)
	user.PUT("/update/:id/role", d.UserHandler.UpdateRole, adminOnly)
	user.DELETE("/users/:id", d.UserHandler.Delete, adminOnly)

	product := e.Group("/product")
	product.GET("/products", d.ProductHandler.List)
	if d.SearchHandler != nil {
		product.GET("/products/search", d.SearchHandler.Search)
	}
	product.GET("/products/:id", d.ProductHandler.Get)
	product.POST("/products", d.ProductHandler.Create, adminOnly)
	product.PUT("/products/:id", d.ProductHandler.Update, adminOnly)
	product.DELETE("/products/:id", d.ProductHandler.Delete, adminOnly)

	order := e.Group("/order", d.Guard.RequireAuth)
	order.POST("/orders", d.OrderHandler.Create)
	order.GET("/orders", d.OrderHandler.List)
}
