package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"borsa-dashboard-go/internal/auth"
	"borsa-dashboard-go/internal/autotrader"
	"borsa-dashboard-go/internal/catalog"
	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/content"
	"borsa-dashboard-go/internal/i18n"
	"borsa-dashboard-go/internal/market"
	"borsa-dashboard-go/internal/subscription"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the API serves.
type Deps struct {
	Catalog       *catalog.Catalog
	Board         *market.Board
	Prices        *market.PriceProxy
	News          market.NewsSource
	Auth          *auth.Service
	Subscription  *subscription.Workflow
	Wishlist      *content.Store
	Notifications *content.Store
	Trader        *autotrader.Service
	Localizer     *i18n.Localizer
}

// Server provides the HTTP interface of the dashboard.
type Server struct {
	server *http.Server
	engine *gin.Engine
	deps   Deps
	logger *zap.Logger
	now    func() time.Time
}

// NewServer creates a new Server and registers its routes.
func NewServer(cfg *config.Server, deps Deps, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		deps:   deps,
		logger: logger.Named("api-server"),
		now:    time.Now,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.engine.Use(gin.Recovery(), s.accessLog(), cors(cfg.AllowedOrigins), s.language())
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api", s.authenticate())

	api.GET("/instruments", s.listInstruments)
	api.GET("/instruments/:symbol", s.getInstrument)
	api.POST("/instruments/refresh", s.refreshInstruments)
	api.GET("/prices", s.getPrices)
	api.POST("/prices", s.postPrices)
	api.POST("/news", s.news)
	api.GET("/entitlements", s.entitlements)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.signUp)
	authGroup.POST("/signin", s.signIn)
	authGroup.POST("/signout", s.requireAuth(), s.signOut)
	authGroup.GET("/username-available", s.usernameAvailable)
	authGroup.POST("/password-reset/request", s.requestPasswordReset)
	authGroup.POST("/password-reset", s.resetPassword)

	me := api.Group("/me", s.requireAuth())
	me.GET("", s.me)
	me.PUT("/username", s.updateUsername)
	me.PUT("/password", s.changePassword)

	sub := api.Group("/subscription", s.requireAuth())
	sub.GET("/requests", s.listMyRequests)
	sub.POST("/requests", s.submitRequest)
	sub.POST("/redeem", s.redeem)
	sub.POST("/downgrade", s.downgrade)

	admin := api.Group("/admin", s.requireAuth(), s.requireAdmin())
	admin.GET("/requests", s.listRequests)
	admin.POST("/requests/:id/approve", s.approveRequest)
	admin.POST("/requests/:id/reject", s.rejectRequest)

	s.contentRoutes(api.Group("/wishlist", s.requireAuth()), s.deps.Wishlist)
	s.contentRoutes(api.Group("/notifications", s.requireAuth()), s.deps.Notifications)

	trader := api.Group("/trader", s.requireAuth())
	trader.GET("", s.traderOverview)
	trader.PUT("/settings", s.updateTraderSettings)
	trader.POST("/start", s.startTrader)
	trader.POST("/stop", s.stopTrader)
}

// Start runs the HTTP server in a new goroutine.
func (s *Server) Start() {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": s.now().UnixMilli(),
	})
}
