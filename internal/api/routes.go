package api

import (
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	OwnerJWTSecret string
	RateLimitRPS   float64
	RateLimitBurst int
}

// RegisterRoutes mounts the checkout routes and, when a signing secret is
// configured, the JWT protected owner ledger routes.
func RegisterRoutes(e *echo.Echo, orders *OrderHandler, owner *OwnerHandler, cfg RouteConfig) {
	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimitRPS),
				Burst:     cfg.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.POST("/orders", orders.CreateOrder, middleware.RateLimiterWithConfig(limiterConfig))
	e.GET("/orders/health", health)
	e.GET("/orders/:order_number", orders.GetOrder)

	if cfg.OwnerJWTSecret == "" {
		return
	}
	g := e.Group("/owner", echojwt.JWT([]byte(cfg.OwnerJWTSecret)))
	g.GET("/notifications", owner.ListNotifications)
	g.PUT("/notifications/:id/read", owner.SetRead)
}

func health(c echo.Context) error {
	return c.JSON(200, map[string]interface{}{
		"status":  "ok",
		"service": "checkout-service",
		"time":    time.Now().Format(time.RFC3339),
	})
}
