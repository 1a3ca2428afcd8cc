package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"augeo-server/services/admin-api/internal/config"
	invitationdomain "augeo-server/services/admin-api/internal/domain/invitation"
	mediadomain "augeo-server/services/admin-api/internal/domain/media"
	npodomain "augeo-server/services/admin-api/internal/domain/npo"
	"augeo-server/services/admin-api/internal/infrastructure/auth"
	"augeo-server/services/admin-api/internal/infrastructure/database"
	"augeo-server/services/admin-api/internal/infrastructure/logger"
	"augeo-server/services/admin-api/internal/infrastructure/notification"
	"augeo-server/services/admin-api/internal/infrastructure/observability"
	"augeo-server/services/admin-api/internal/infrastructure/queue"
	auctionitemrepo "augeo-server/services/admin-api/internal/infrastructure/repository/auctionitem"
	invitationrepo "augeo-server/services/admin-api/internal/infrastructure/repository/invitation"
	mediarepo "augeo-server/services/admin-api/internal/infrastructure/repository/media"
	nporepo "augeo-server/services/admin-api/internal/infrastructure/repository/npo"
	"augeo-server/services/admin-api/internal/infrastructure/storage"
	"augeo-server/services/admin-api/internal/interfaces/httpserver"
)

// @title Augeo Admin API
// @version 1.0
// @description Admin backend for auction item media, NPO review and team invitations
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.GetDatabaseWriteDSN(),
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	grantor, err := storage.NewS3Grantor(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize blob storage grantor")
	}

	jobQueue, err := queue.NewPublisher(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect job queue")
	}
	defer func() {
		if err := jobQueue.Close(); err != nil {
			log.Error().Err(err).Msg("close job queue")
		}
	}()

	authValidator, err := auth.NewValidator(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	mailer := notification.NewMailer(cfg, log)
	dispatcher := notification.NewDispatcher(cfg, mailer, log)

	mediaRepository := mediarepo.NewRepository(db)
	itemRepository := auctionitemrepo.NewRepository(db)
	npoRepository := nporepo.NewRepository(db)
	invitationRepository := invitationrepo.NewRepository(db)

	mediaService := mediadomain.NewService(cfg, mediaRepository, itemRepository, grantor, jobQueue, log)
	npoService := npodomain.NewService(cfg, npoRepository, dispatcher, log)
	invitationService := invitationdomain.NewService(cfg, invitationRepository, dispatcher, log)

	httpServer := httpserver.New(cfg, log, mediaService, npoService, invitationService, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
