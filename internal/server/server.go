package server

import (
	"context"
	"log/slog"
	"net/http"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/handler"
	authmw "storefront-commerce/internal/middleware"
	"storefront-commerce/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Services struct {
	Tokens    service.TokenService
	Accounts  service.AccountService
	Catalog   service.CatalogService
	Customers service.CustomerService
	Reviews   service.ReviewService
}

type Server struct {
	echo   *echo.Echo
	tokens service.TokenService

	healthHandler   *handler.HealthHandler
	authHandler     *handler.AuthHandler
	itemHandler     *handler.ItemHandler
	productHandler  *handler.ManualProductHandler
	customerHandler *handler.CustomerHandler
	reviewHandler   *handler.ReviewHandler
}

func NewServer(cfg *config.Config, logger *slog.Logger, services *Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.Warn("request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins(),
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit("16M"))

	s := &Server{
		echo:            e,
		tokens:          services.Tokens,
		healthHandler:   handler.NewHealthHandler(cfg),
		authHandler:     handler.NewAuthHandler(services.Accounts),
		itemHandler:     handler.NewItemHandler(services.Catalog),
		productHandler:  handler.NewManualProductHandler(services.Catalog),
		customerHandler: handler.NewCustomerHandler(services.Customers),
		reviewHandler:   handler.NewReviewHandler(services.Reviews),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	requireAdmin := authmw.RequireAdmin(s.tokens)
	requireCustomer := authmw.RequireCustomer(s.tokens)

	api := s.echo.Group("/api")

	api.GET("/health", s.healthHandler.Health)
	api.POST("/auth/login", s.authHandler.AdminLogin)

	// -------- catalog --------
	api.GET("/items", s.itemHandler.List)
	api.GET("/items/:id", s.itemHandler.Get)
	api.POST("/items", s.itemHandler.Create, requireAdmin)

	api.GET("/manual-products", s.productHandler.List)
	api.GET("/manual-products/:id", s.productHandler.Get)
	api.POST("/manual-products", s.productHandler.Create, requireAdmin)
	api.PUT("/manual-products/:id", s.productHandler.Update, requireAdmin)
	api.DELETE("/manual-products/:id", s.productHandler.Delete, requireAdmin)

	api.GET("/reviews/:type/:id", s.reviewHandler.ListForProduct)

	// -------- customer --------
	api.POST("/customer/signup", s.authHandler.Signup)
	api.POST("/customer/login", s.authHandler.CustomerLogin)

	customer := api.Group("/customer", requireCustomer)
	customer.GET("/me", s.authHandler.Me)
	customer.PUT("/me", s.authHandler.UpdateMe)

	customer.GET("/addresses", s.customerHandler.ListAddresses)
	customer.POST("/addresses", s.customerHandler.AddAddress)

	customer.GET("/favorites", s.customerHandler.ListFavorites)
	customer.POST("/favorites", s.customerHandler.AddFavorite)
	customer.DELETE("/favorites/:id", s.customerHandler.RemoveFavorite)

	customer.GET("/cart", s.customerHandler.ListCart)
	customer.POST("/cart", s.customerHandler.AddToCart)
	customer.PUT("/cart/:id", s.customerHandler.SetCartQuantity)
	customer.DELETE("/cart/:id", s.customerHandler.RemoveCartItem)

	customer.GET("/orders", s.customerHandler.ListOrders)
	customer.GET("/orders/:id/items", s.customerHandler.ListOrderItems)
	customer.POST("/checkout", s.customerHandler.Checkout)

	customer.GET("/reviews", s.reviewHandler.ListMine)
	customer.POST("/reviews", s.reviewHandler.Create)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
