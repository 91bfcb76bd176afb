package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsjolt/internal/activity"
	"newsjolt/internal/config"
	"newsjolt/internal/digest"
	"newsjolt/internal/handler"
	"newsjolt/internal/repository"
	"newsjolt/internal/scheduler"
	"newsjolt/pkg/llm"
	"newsjolt/pkg/mail"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("error creating data directory: %v", err)
	}

	headlineRepository := repository.NewHeadlineRepository(cfg.HeadlinePath())
	digestRepository := repository.NewDigestRepository(cfg.DigestPath())

	generator, err := newGenerator(cfg)
	if err != nil {
		log.Fatalf("error creating news generator: %v", err)
	}
	slog.Info("news generator ready", "provider", generator.Name(), "model", generator.Model())

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		To:       cfg.Recipient,
	})

	activityLog := activity.NewLog(logger)

	runner := digest.NewRunner(generator, headlineRepository, digestRepository, mailer, activityLog, digest.Config{
		Language:         cfg.Language,
		CountPerCategory: cfg.NewsPerCategory,
		Interval:         time.Duration(cfg.IntervalMinutes) * time.Minute,
		GenerateTimeout:  time.Duration(cfg.GenerateTimeoutSec) * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New()
	err = sched.Every(cfg.IntervalMinutes, func() {
		runner.Run(ctx)
		// The runner estimates the next run from its interval; the
		// schedule knows the exact minute boundary.
		if next := sched.Next(); !next.IsZero() {
			activityLog.SetNextRun(next)
		}
	})
	if err != nil {
		log.Fatalf("error scheduling digest cycle: %v", err)
	}
	sched.Start()
	if next := sched.Next(); !next.IsZero() {
		activityLog.SetNextRun(next)
	}

	dashboardHandler := handler.NewDashboardHandler(activityLog, digestRepository)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}
	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", dashboardHandler.GetIndex)
	r.GET("/api/dashboard", dashboardHandler.GetDashboard)
	r.GET("/health", dashboardHandler.GetHealth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("dashboard server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received shutdown signal", "signal", sig)

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("shutdown complete")
}

// newsGenerator adds the model accessor main logs at startup on top of
// what the digest cycle itself needs.
type newsGenerator interface {
	digest.Generator
	Model() string
}

func newGenerator(cfg config.Config) (newsGenerator, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return llm.NewAnthropicGenerator(cfg.AnthropicAPIKey), nil
	case config.ProviderOpenAI:
		return llm.NewOpenAIGenerator(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.Provider)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
