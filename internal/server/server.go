package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"example.com/mil-eventos/backend/internal/ai"
	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/config"
	"example.com/mil-eventos/backend/internal/handlers"
	"example.com/mil-eventos/backend/internal/notifications"
	"example.com/mil-eventos/backend/internal/pipeline"
	"example.com/mil-eventos/backend/internal/store"
)

// New assembles the Echo HTTP server with routes and dependencies on top of
// the given store backend.
func New(cfg config.Config, logger *slog.Logger, st store.Store) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	notificationHub := notifications.NewHub()
	proposalPipeline := pipeline.New(st, notificationHub, logger)

	var aiClient ai.Client
	if strings.ToLower(cfg.AI.Provider) == "gemini" {
		aiClient = ai.NewGeminiClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxOutputTokens)
	}
	aiService := ai.NewService(aiClient)

	authHandler := handlers.NewAuthHandler(st, tokenManager)
	proposalHandler := handlers.NewProposalHandler(st, proposalPipeline)
	agendaHandler := handlers.NewAgendaHandler(st)
	eventHandler := handlers.NewEventHandler(st, notificationHub)
	transactionHandler := handlers.NewTransactionHandler(st, notificationHub)
	clientHandler := handlers.NewClientHandler(st)
	supplierHandler := handlers.NewSupplierHandler(st)
	serviceHandler := handlers.NewServiceHandler(st)
	profileHandler := handlers.NewProfileHandler(st)
	dashboardHandler := handlers.NewDashboardHandler(st)
	aiHandler := handlers.NewAIHandler(aiService)
	messageHandler := handlers.NewMessageHandler(st)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		authHandler,
		proposalHandler,
		agendaHandler,
		eventHandler,
		transactionHandler,
		clientHandler,
		supplierHandler,
		serviceHandler,
		profileHandler,
		dashboardHandler,
		aiHandler,
		messageHandler,
		notificationHandler,
		auth.JWTMiddleware(tokenManager),
		authRateLimiter(cfg.Auth),
		aiRateLimiter(cfg.AI),
	)

	return e
}

// NewHTTPServer creates the net/http server with the configured timeouts.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// NewOverdueSweeper schedules the daily job that marks pending receivables
// dated before today as overdue. The caller starts and stops the scheduler.
func NewOverdueSweeper(st store.Store, logger *slog.Logger) *cron.Cron {
	if logger == nil {
		logger = slog.Default()
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		now := time.Now()
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		marked, err := st.MarkOverdueTransactions(ctx, startOfToday)
		if err != nil {
			logger.Error("overdue sweep failed", slog.String("error", err.Error()))
			return
		}

		if marked > 0 {
			logger.Info("marked overdue transactions", slog.Int64("count", marked))
		}
	})
	if err != nil {
		logger.Error("failed to schedule overdue sweep", slog.String("error", err.Error()))
	}

	return scheduler
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
