package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vinayaksoni1729/TaskX/internal/config"
	"github.com/vinayaksoni1729/TaskX/internal/handler"
	"github.com/vinayaksoni1729/TaskX/internal/jobs"
	"github.com/vinayaksoni1729/TaskX/internal/middleware"
	"github.com/vinayaksoni1729/TaskX/internal/oauth"
	"github.com/vinayaksoni1729/TaskX/internal/parse"
	"github.com/vinayaksoni1729/TaskX/internal/repo"
	"github.com/vinayaksoni1729/TaskX/internal/service"
	"github.com/vinayaksoni1729/TaskX/pkg/auth"
	"github.com/vinayaksoni1729/TaskX/pkg/email"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	// Зависимости: единственный настроенный пул передается явно,
	// никаких глобальных синглтонов
	taskRepo := repo.NewTaskRepo(pool)
	userRepo := repo.NewUserRepo(pool)

	parser := parse.New()
	tokens := auth.NewTokenManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessDuration, cfg.JWT.RefreshDuration)
	sender := email.NewSMTPSender(email.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	})
	google := oauth.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)

	taskService := service.NewTaskService(taskRepo, parser)
	authService := service.NewAuthService(userRepo, tokens)

	reminderJob := jobs.NewReminder(taskRepo, sender, logger, cfg.Jobs.ReminderLookahead)
	reportJob := jobs.NewReport(taskRepo, sender, logger)

	taskHandler := handler.NewTaskHandler(taskService, logger)
	authHandler := handler.NewAuthHandler(authService, google, logger)
	jobHandler := handler.NewJobHandler(reminderJob, reportJob, cfg.Jobs.TriggerToken, logger)
	pageHandler, err := handler.NewPageHandler(logger)
	if err != nil {
		log.Fatal("Failed to parse page templates.")
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Get("/", pageHandler.Landing)

	r.Route("/api/auth", authHandler.Routes)
	r.Route("/api/jobs", jobHandler.Routes)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))
		r.Get("/api/auth/me", authHandler.Me)
		r.Route("/api/tasks", taskHandler.Routes)
	})

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
