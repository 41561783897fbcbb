package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"

	"deptevents/config"
	_ "deptevents/docs"
	"deptevents/internal/adapters/auth"
	"deptevents/internal/adapters/email"
	"deptevents/internal/adapters/media"
	"deptevents/internal/commands"
	deliveryhttp "deptevents/internal/delivery/http"
	"deptevents/internal/delivery/http/controllers"
	"deptevents/internal/delivery/http/middleware"
	"deptevents/internal/delivery/http/views"
	"deptevents/internal/domain"
	"deptevents/internal/repository"
	"deptevents/internal/scheduler"
	"deptevents/internal/services"
)

const (
	shutdownTimeout   = 15 * time.Second
	rateLimiterIdle   = 10 * time.Minute
	flashCookieName   = "deptevents_flash"
	readHeaderTimeout = 10 * time.Second
)

// @title Department Events API
// @version 1.0
// @description Department event management: department login, event CRUD with upcoming and past tabs, media attachments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /api/auth/login.
func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := commands.HashPassword(os.Args[2:], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

	storage := services.NewStorageManager(kv, logger)
	if err := storage.InitializeDepartments(ctx); err != nil {
		return fmt.Errorf("initialize departments: %w", err)
	}

	credentials, err := loadCredentials(cfg, logger)
	if err != nil {
		return err
	}
	authService := services.NewAuthService(storage, credentials, auth.NewJWTIssuer(cfg.JWTSecret), auth.NewJWTVerifier(cfg.JWTSecret), cfg.JWTExpiry)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.AWS.Region,
			AccessKeyID:        cfg.AWS.AccessKeyID,
			SecretAccessKey:    cfg.AWS.SecretAccessKey,
			InsecureSkipVerify: cfg.AWS.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	emailTemplates, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	notifier := services.NewEmailService(mailer, emailTemplates, cfg.Mail.Recipients, logger)
	announcer := services.NewAsyncNotifier(notifier, services.DefaultAnnounceTimeout, logger)
	defer announcer.Wait()

	eventService := services.NewEventService(storage, media.NewEncoder(media.DefaultMaxDimension, logger), logger, cfg.RequestTimeout,
		services.WithNotifier(announcer),
		services.WithClock(func() time.Time { return time.Now().In(loc) }),
	)

	reminders := scheduler.New(storage, notifier, cfg.ReminderCron, loc, logger)
	if err := reminders.Start(); err != nil {
		return fmt.Errorf("start reminder scheduler: %w", err)
	}
	defer reminders.Stop()

	sessions := scs.New()
	sessions.Lifetime = cfg.JWTExpiry
	sessions.Cookie.Name = flashCookieName
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = cfg.IsProduction()

	renderer, err := views.New(sessions)
	if err != nil {
		return err
	}

	router := deliveryhttp.NewRouter(
		controllers.NewPageController(logger, authService, eventService, renderer, controllers.PageConfig{
			TokenTTL:       cfg.JWTExpiry,
			SecureCookies:  cfg.IsProduction(),
			MaxUploadBytes: cfg.MaxUploadBytes(),
		}),
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, eventService),
		authService,
		middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, rateLimiterIdle),
		logger,
	)

	var handler http.Handler = sessions.LoadAndSave(router)
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreDriver, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadCredentials prefers the hashed credentials file when one is configured.
func loadCredentials(cfg *config.Config, logger *slog.Logger) (domain.CredentialVerifier, error) {
	if cfg.CredentialsFile == "" {
		if cfg.IsProduction() {
			logger.Warn("CREDENTIALS_FILE not set, using built-in department passwords")
		}
		return auth.NewStaticVerifier(auth.DefaultCredentials), nil
	}
	return auth.LoadHashedVerifier(cfg.CredentialsFile, logger)
}
