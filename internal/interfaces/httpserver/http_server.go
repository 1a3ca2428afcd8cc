package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	adminapidocs "augeo-server/services/admin-api/docs/swagger"
	"augeo-server/services/admin-api/internal/config"
	invitationdomain "augeo-server/services/admin-api/internal/domain/invitation"
	mediadomain "augeo-server/services/admin-api/internal/domain/media"
	npodomain "augeo-server/services/admin-api/internal/domain/npo"
	"augeo-server/services/admin-api/internal/infrastructure/auth"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/handlers"
	"augeo-server/services/admin-api/internal/interfaces/httpserver/middleware"
	v1 "augeo-server/services/admin-api/internal/interfaces/httpserver/routes/v1"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
	auth   *auth.Validator
}

// New constructs the HTTP server with default middleware and routes.
func New(
	cfg *config.Config,
	log zerolog.Logger,
	mediaService *mediadomain.Service,
	npoService *npodomain.Service,
	invitationService *invitationdomain.Service,
	authValidator *auth.Validator,
) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	adminapidocs.SwaggerInfo.BasePath = "/"

	engine := gin.New()
	engine.Use(gin.Recovery(), gin.Logger(), middleware.RequestID(), middleware.Metrics())

	handlerProvider := handlers.NewProvider(cfg, mediaService, npoService, invitationService, authValidator, log)
	routeProvider := v1.NewRoutes(handlerProvider, authValidator)
	registerCoreRoutes(engine, cfg, routeProvider, authValidator)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
		auth:   authValidator,
	}
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("admin-api HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, routes *v1.Routes, authValidator *auth.Validator) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": cfg.ServiceName, "status": "ok"})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		if authValidator != nil && !authValidator.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "initializing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Register(engine.Group("/"))
}
