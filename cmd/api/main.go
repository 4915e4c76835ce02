package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cajj-backend/internal/about"
	"cajj-backend/internal/actions"
	"cajj-backend/internal/auth"
	"cajj-backend/internal/cache"
	"cajj-backend/internal/config"
	"cajj-backend/internal/content"
	"cajj-backend/internal/dashboard"
	"cajj-backend/internal/db"
	"cajj-backend/internal/documentations"
	"cajj-backend/internal/gallery"
	"cajj-backend/internal/handlers"
	"cajj-backend/internal/httpx"
	"cajj-backend/internal/logging"
	"cajj-backend/internal/metrics"
	"cajj-backend/internal/news"
	"cajj-backend/internal/notifications"
	"cajj-backend/internal/publications"
	"cajj-backend/internal/storage"
	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"
)

// formOverhead leaves room for the text fields sent next to uploaded files.
const formOverhead = 1 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var backend storage.Backend
	switch cfg.StorageDriver {
	case "s3", "minio":
		s3, err := storage.NewS3(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, logger)
		if err != nil {
			logger.Error("object storage unavailable", slog.String("error", err.Error()))
			os.Exit(1)
		}
		backend = s3
		logger.Info("storage: s3", slog.String("endpoint", cfg.S3Endpoint), slog.String("bucket", cfg.S3Bucket))
	default:
		local, err := storage.NewLocal(cfg.UploadDir, logger)
		if err != nil {
			logger.Error("upload directory unavailable", slog.String("error", err.Error()))
			os.Exit(1)
		}
		backend = local
		logger.Info("storage: local", slog.String("root", local.Root()))
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret: []byte(cfg.JWTSecret),
			TTL:    cfg.TokenTTL,
			Issuer: "cajj-backend",
		}
	} else {
		logger.Warn("JWT_SECRET not set: admin routes disabled")
	}

	var mailer handlers.ContactMailer
	if brevo := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox); brevo != nil {
		mailer = brevo
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	} else {
		logger.Info("brevo mailer disabled")
	}

	m := metrics.New()
	deps := content.Deps{
		Files:    upload.New(backend, cfg.PublicStoragePrefix, logger, m),
		Rules:    upload.NewRules(cfg.MaxGalleryUploadBytes, cfg.MaxAttachmentUploadBytes),
		Cache:    cacheStore,
		CacheTTL: time.Duration(cfg.CacheTTLSeconds) * time.Second,
		Location: cfg.Timezone,
		Log:      logger,
	}
	val := validation.New()
	errs := httpx.ErrorWriter{Debug: !cfg.IsProduction()}
	galleryBody := cfg.MaxGalleryUploadBytes + formOverhead
	// news and publications carry a media file and a PDF
	attachmentBody := 2*cfg.MaxAttachmentUploadBytes + formOverhead

	newsSvc := news.NewService(news.NewRepository(cols.News), deps)
	gallerySvc := gallery.NewService(gallery.NewPhotoRepository(cols.Photos), gallery.NewVideoRepository(cols.Videos), deps)
	publicationSvc := publications.NewService(publications.NewRepository(cols.Publications), deps)
	aboutSvc := about.NewService(about.NewRepository(cols.AboutSections), deps)
	actionSvc := actions.NewService(actions.NewRepository(cols.Actions), deps)
	documentationSvc := documentations.NewService(documentations.NewRepository(cols.Documentations), deps)

	a := &app{
		cfg:     cfg,
		log:     logger,
		metrics: m,
		auth:    jwtManager,
		server: &handlers.Server{
			Val:  val,
			Log:  logger,
			Errs: errs,
			Auth: jwtManager,
			Credentials: auth.Credentials{
				Username:     cfg.AdminUsername,
				Password:     cfg.AdminPassword,
				PasswordHash: cfg.AdminPasswordHash,
			},
			Files:        backend,
			Mailer:       mailer,
			ContactInbox: cfg.ContactInbox,
		},
		news:           news.NewHandler(newsSvc, val, logger, errs, attachmentBody),
		gallery:        gallery.NewHandler(gallerySvc, val, logger, errs, galleryBody),
		publications:   publications.NewHandler(publicationSvc, val, logger, errs, attachmentBody),
		about:          about.NewHandler(aboutSvc, val, logger, errs),
		actions:        actions.NewHandler(actionSvc, val, logger, errs),
		documentations: documentations.NewHandler(documentationSvc, val, logger, errs, cfg.MaxAttachmentUploadBytes+formOverhead),
		dashboard:      dashboard.NewHandler(dashboard.Sources{
			News:           newsSvc,
			Gallery:        gallerySvc,
			Publications:   publicationSvc,
			About:          aboutSvc,
			Actions:        actionSvc,
			Documentations: documentationSvc,
		}, logger, errs),
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
