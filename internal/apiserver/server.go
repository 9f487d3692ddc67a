// Package apiserver assembles the CRM backend: routing, middleware,
// and the seeded demo data set.
package apiserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/crmdeck/crmdeck/internal/apiserver/database"
	"github.com/crmdeck/crmdeck/internal/apiserver/handler"
	"github.com/crmdeck/crmdeck/internal/apiserver/middleware"
	"github.com/crmdeck/crmdeck/internal/apiserver/tokenstore"
	"github.com/crmdeck/crmdeck/internal/auth/jwt"
	"github.com/crmdeck/crmdeck/internal/common/config"
	"github.com/crmdeck/crmdeck/internal/i18n"
	"github.com/crmdeck/crmdeck/pkg/metrics"
)

// Server owns the HTTP surface of the CRM backend
type Server struct {
	cfg     *config.APIServerConfig
	logger  *zap.Logger
	db      database.Database
	tokens  tokenstore.Store
	handler *handler.Handler
	metrics *metrics.Metrics
}

// NewServer wires the stores and handlers from configuration
func NewServer(cfg *config.APIServerConfig, logger *zap.Logger) (*Server, error) {
	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		logger.Warn("failed to load translations", zap.Error(err))
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	tokens, err := tokenstore.NewStore(logger, &cfg.TokenStore)
	if err != nil {
		return nil, fmt.Errorf("init token store: %w", err)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration.Std(),
	})
	if err != nil {
		return nil, fmt.Errorf("init jwt service: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		tokens:  tokens,
		handler: handler.NewHandler(db, jwtService, tokens, logger),
	}
	if cfg.Metrics.Enabled {
		s.metrics = metrics.New(cfg.Metrics)
	}
	return s, nil
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(i18n.LanguageMiddleware())
	r.Use(middleware.CORS(&s.cfg.CORS))
	if s.cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(s.cfg.Tracing.ServiceName))
	}
	if s.metrics != nil {
		r.Use(s.metrics.GinMiddleware())
		r.GET("/metrics", s.metrics.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", s.handler.Login)
	r.POST("/auth/logout", s.handler.Logout)
	r.GET("/auth/me", s.handler.Me)

	r.GET("/tenants", s.handler.ListTenants)
	r.POST("/tenants", s.handler.CreateTenant)

	users := r.Group("/users", middleware.Identity(s.db), middleware.SuperAdminOnly())
	users.GET("", s.handler.ListUsers)
	users.POST("", s.handler.CreateUser)

	r.GET("/customers", s.handler.ListCustomers)
	r.POST("/customers", s.handler.CreateCustomer)

	r.GET("/contacts", s.handler.ListCustomers)
	r.POST("/contacts", s.handler.CreateCustomer)
	r.GET("/contacts/:id", s.handler.GetContact)

	return r
}

// Run seeds the store and serves until the listener fails
func (s *Server) Run(ctx context.Context) error {
	if err := Seed(ctx, s.db, s.logger); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("crm api server starting", zap.String("addr", addr))
	return s.Router().Run(addr)
}

// Close releases the underlying stores
func (s *Server) Close() error {
	return s.db.Close()
}
