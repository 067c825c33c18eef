package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dealerops/internal/auth"
	"dealerops/internal/config"
	"dealerops/internal/email/noop"
	"dealerops/internal/email/ses"
	"dealerops/internal/handler"
	"dealerops/internal/logging"
	"dealerops/internal/port"
	"dealerops/internal/reconcile"
	"dealerops/internal/repository/postgres"
	"dealerops/internal/router"
	"dealerops/internal/service"
	s3storage "dealerops/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func newNotifier(ctx context.Context, cfg *config.EmailConfig, logger *zap.Logger) (port.IntakeNotifier, error) {
	if cfg.Provider == "ses" {
		logger.Info("using SES notifier", zap.String("region", cfg.Region), zap.Int("recipients", len(cfg.Recipients)))
		return ses.NewSESSender(ctx, cfg)
	}
	return noop.NewNoopSender(logger.Named("notifier")), nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	carRepo := postgres.NewCarRepo(db)
	repairRepo := postgres.NewRepairHistoryRepo(db)
	testDriveRepo := postgres.NewTestDriveRepo(db)
	unifiedRepo := postgres.NewUnifiedRecordRepo(db)
	mirrorRepo := postgres.NewMirrorRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	reconciler := reconcile.New(
		reconcile.Sources{
			Repairs:    repairRepo,
			TestDrives: testDriveRepo,
			Unified:    unifiedRepo,
			Mirrors:    mirrorRepo,
		},
		logger.Named("reconcile"),
		reconcile.WithMirrorPrecedence(cfg.Reconcile.MirrorPrecedence),
		reconcile.WithFetchTimeout(cfg.Reconcile.FetchTimeout),
	)
	notifier, err := newNotifier(ctx, &cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	intakeSvc := service.NewIntakeService(carRepo, s3Client, notifier, &cfg.S3, &cfg.Intake, logger.Named("intake"))
	vehicleSvc := service.NewVehicleService(carRepo, reconciler, logger.Named("vehicles"))

	// Initialize handlers
	errs := handler.NewErrorResponder(logger)
	intakeH := handler.NewIntakeHandler(intakeSvc, errs)
	vehicleH := handler.NewVehicleHandler(vehicleSvc, errs)
	healthH := handler.NewHealthHandler(db)

	var validator auth.TokenValidator
	if cfg.JWT.Enabled {
		validator = auth.NewValidator(cfg.JWT)
	} else {
		logger.Warn("JWT validation disabled; /api/v1 is open")
	}

	r := router.Setup(logger, cfg.CORS.AllowedOrigins, validator, intakeH, vehicleH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
