package http

import (
	"github.com/gin-gonic/gin"

	"lunaspay/internal/infrastructure/config"
	"lunaspay/internal/interfaces/http/handlers"
	"lunaspay/internal/interfaces/http/middleware"
	"lunaspay/internal/shared/logger"
)

// Router wires handlers and middleware onto a gin engine.
type Router struct {
	engine          *gin.Engine
	healthHandler   *handlers.HealthHandler
	qrHandler       *handlers.QRHandler
	paymentHandler  *handlers.PaymentHandler
	bridgeHandler   *handlers.BridgeHandler
	merchantHandler *handlers.MerchantHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          logger.Interface
}

func NewRouter(
	qrHandler *handlers.QRHandler,
	paymentHandler *handlers.PaymentHandler,
	bridgeHandler *handlers.BridgeHandler,
	merchantHandler *handlers.MerchantHandler,
	authMiddleware *middleware.AuthMiddleware,
	log logger.Interface,
) *Router {
	return &Router{
		engine:          gin.New(),
		healthHandler:   handlers.NewHealthHandler(),
		qrHandler:       qrHandler,
		paymentHandler:  paymentHandler,
		bridgeHandler:   bridgeHandler,
		merchantHandler: merchantHandler,
		authMiddleware:  authMiddleware,
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.Check)

	r.setupQRRoutes()
	r.setupPaymentRoutes()
	r.setupBridgeRoutes()
	r.setupMerchantRoutes()
}

func (r *Router) setupQRRoutes() {
	qr := r.engine.Group("/api/qr")
	qr.Use(r.authMiddleware.RequireWallet())
	{
		qr.POST("/decode", r.qrHandler.DecodeQR)
	}
}

func (r *Router) setupPaymentRoutes() {
	payments := r.engine.Group("/api/payments")
	payments.Use(r.authMiddleware.RequireWallet())
	{
		payments.POST("", r.paymentHandler.CreatePayment)
		payments.GET("", r.paymentHandler.ListPayments)
		payments.GET("/:id", r.paymentHandler.GetPayment)
		payments.POST("/:id/confirm", r.paymentHandler.ConfirmPayment)
	}
}

func (r *Router) setupBridgeRoutes() {
	bridge := r.engine.Group("/api/bridge")
	bridge.Use(r.authMiddleware.RequireWallet())
	{
		bridge.POST("/requests", r.bridgeHandler.SubmitRequest)
	}
}

func (r *Router) setupMerchantRoutes() {
	merchants := r.engine.Group("/api/merchants")
	merchants.Use(r.authMiddleware.RequireWallet())
	{
		merchants.POST("", r.merchantHandler.RegisterMerchant)
		merchants.GET("", r.merchantHandler.ListMerchants)
		merchants.PATCH("/:id/status", r.merchantHandler.UpdateMerchantStatus)
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
