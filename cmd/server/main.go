package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reflet/internal/auth"
	"github.com/reflet/internal/config"
	"github.com/reflet/internal/content"
	"github.com/reflet/internal/db"
	"github.com/reflet/internal/handler"
	"github.com/reflet/internal/imaging"
	"github.com/reflet/internal/logging"
	"github.com/reflet/internal/router"
	"github.com/reflet/internal/scheduler"
	"github.com/reflet/internal/service"
	"github.com/reflet/internal/storage"
	"github.com/reflet/internal/storage/fs"
	"github.com/reflet/internal/storage/s3"
)

const resetTokenTTL = time.Hour

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 初始化数据库
	if err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Silent: cfg.Log.Level != "debug",
	}); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := db.EnsureUser(cfg.SuperRootEmail, cfg.SuperRootPassword); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure admin account")
	}
	if err := service.NewPageSettingService(db.DB).Seed(content.Default); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed page settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, uploadDir, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("failed to open media storage")
	}

	if cfg.SessionSecret == "reflet-dev-secret" {
		logger.Warn().Msg("SESSION_SECRET is not set, using the development secret")
	}

	retention := scheduler.NewRetentionScheduler(
		service.NewContactService(db.DB),
		scheduler.RetentionConfig{Schedule: cfg.Retention.Schedule, Retention: cfg.Retention.MessageRetention()},
		logger,
	)
	if err := retention.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("message retention job not started")
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(router.Options{
		DB: db.DB,
		Handler: handler.Options{
			Store:       store,
			Pipeline:    imaging.New(imaging.WithMaxBytes(cfg.MaxUploadBytes)),
			Auth:        auth.NewManager(auth.NewNotifier(), "/admin/login"),
			ResetTokens: auth.NewResetTokens([]byte(cfg.SessionSecret), resetTokenTTL),
			ResetURL:    cfg.SiteBaseURL + "/admin/reset-password",
			Schema:      content.Default,
			SiteName:    cfg.SiteName,
			Logger:      logger,
		},
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.SecureCookies,
		CSRFEnabled:   cfg.CSRFEnabled,
		StaticDir:     cfg.StaticDir,
		UploadDir:     uploadDir,
		UploadURLPath: cfg.Storage.UploadURLPath,
		TemplateGlob:  cfg.TemplateGlob,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	retention.Stop()

	if sqlDB, err := db.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info().Msg("server exited")
}

// openStore returns the configured media store and, for the filesystem backend, the
// directory the router serves uploads from.
func openStore(ctx context.Context, cfg config.AppConfig) (storage.Store, string, error) {
	if cfg.Storage.Backend == config.StorageS3 {
		s3cfg := cfg.Storage.S3
		store, err := s3.New(ctx, s3.Config{
			Region:          s3cfg.Region,
			Bucket:          s3cfg.Bucket,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			Endpoint:        s3cfg.Endpoint,
			UsePathStyle:    s3cfg.UsePathStyle,
			PublicBaseURL:   s3cfg.PublicBaseURL,
		})
		return store, "", err
	}

	store, err := fs.New(fs.Config{BaseDir: cfg.Storage.UploadDir, URLPrefix: cfg.Storage.UploadURLPath})
	if err != nil {
		return nil, "", err
	}
	return store, store.BaseDir(), nil
}
