package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocabquiz/internal/api"
	"vocabquiz/internal/config"
	"vocabquiz/internal/handler"
	"vocabquiz/internal/quiz"
	"vocabquiz/internal/repository"
	"vocabquiz/internal/repository/memory"
	"vocabquiz/internal/repository/postgres"
	"vocabquiz/internal/repository/redis"
	"vocabquiz/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations, then start the HTTP API and the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer logger.Sync()

		logger.Info("Starting vocabquiz")

		// Load configuration
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Connect to database with retries
		db, err := connectDatabase(cfg.DSN(), 30, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
			return err
		}

		// Initialize repositories
		userRepo := postgres.NewUserRepo(db)
		wordRepo := postgres.NewWordRepo(db)

		store, closeStore, err := newSessionStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		// Initialize services
		authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, logger)
		wordService := service.NewWordService(wordRepo, logger)
		quizService := service.NewQuizService(wordRepo, store, quiz.NewGenerator(nil), logger)

		gin.SetMode(gin.ReleaseMode)
		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewServer(authService, wordService, quizService, logger).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		var bot *tele.Bot
		if cfg.BotEnabled() {
			bot, err = tele.NewBot(tele.Settings{
				Token:  cfg.BotToken,
				Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			})
			if err != nil {
				return fmt.Errorf("failed to create bot: %w", err)
			}

			handler.NewHandler(bot, authService, wordService, quizService, logger).RegisterHandlers()

			go func() {
				logger.Info("Bot started successfully")
				bot.Start()
			}()
		} else {
			logger.Info("BOT_TOKEN not set, Telegram bot disabled")
		}

		// Wait for interrupt signal
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigChan:
			logger.Info("Shutdown signal received, stopping...")
		case err = <-errCh:
			logger.Error("HTTP server failed", zap.Error(err))
		}

		// Graceful shutdown
		if bot != nil {
			bot.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := httpServer.Shutdown(ctx); shutdownErr != nil {
			logger.Warn("HTTP server shutdown failed", zap.Error(shutdownErr))
		}

		logger.Info("Stopped gracefully")
		return err
	},
}

// newSessionStore picks Redis when configured and process memory otherwise
func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SessionStore, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("Using in-memory quiz session store")
		return memory.NewSessionStore(cfg.QuizSessionTTL), func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Using Redis quiz session store", zap.String("addr", cfg.Redis.Addr))
	return redis.NewSessionStore(client, cfg.QuizSessionTTL), func() { client.Close() }, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
