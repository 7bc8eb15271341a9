package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/velomart/storefront/internal/server/http/handlers"
	"github.com/velomart/storefront/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	userHandler := handlers.NewUserHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)

	productsAdmin := products.Group("")
	productsAdmin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	productsAdmin.POST("", productHandler.Create)
	productsAdmin.PUT("/:id", productHandler.Update)

	// The processor posts here; signature verification replaces auth.
	api.POST("/payments/webhook", paymentHandler.Webhook)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Create)
	orders.GET("/my-orders", orderHandler.ListMine)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/cancel", orderHandler.Cancel)
	orders.POST("/:id/payment-intent", paymentHandler.CreateIntent)
	orders.POST("/:id/confirm-payment", paymentHandler.Confirm)

	ordersAdmin := orders.Group("")
	ordersAdmin.Use(middleware.AdminRequired())
	ordersAdmin.GET("", orderHandler.List)
	ordersAdmin.PUT("/:id/status", orderHandler.UpdateStatus)
	ordersAdmin.DELETE("/:id", orderHandler.Delete)

	payments := api.Group("/payments")
	payments.Use(middleware.AuthRequired(facade))
	payments.POST("/checkout-session", paymentHandler.CreateSession)
	payments.GET("/checkout-session/:id", paymentHandler.GetSession)
	payments.GET("/methods", paymentHandler.Methods)

	paymentsAdmin := payments.Group("")
	paymentsAdmin.Use(middleware.AdminRequired())
	paymentsAdmin.POST("/refund", paymentHandler.Refund)

	users := api.Group("/users")
	users.Use(middleware.AuthRequired(facade))
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.PUT("/password", userHandler.ChangePassword)
	users.POST("/addresses", userHandler.AddAddress)
	users.PUT("/addresses/:id", userHandler.UpdateAddress)
	users.DELETE("/addresses/:id", userHandler.DeleteAddress)
	users.PUT("/addresses/:id/default", userHandler.SetDefaultAddress)

	return engine
}
