package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mgzon/backend/internal/config"
	"github.com/mgzon/backend/internal/handler"
	"github.com/mgzon/backend/internal/logging"
	"github.com/mgzon/backend/internal/repository"
	"github.com/mgzon/backend/internal/service"
	"github.com/mgzon/backend/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	settingRepo := repository.NewPgSettingRepository(pool)

	sender := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	contactService := service.NewContactService(contactRepo, sender, cfg.AdminEmail)
	settingService := service.NewSettingService(settingRepo)

	h := handler.New(pool, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)
	messageHandler := handler.NewMessageHandler(contactService)
	settingHandler := handler.NewSettingHandler(settingService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", contactHandler.Submit)
	mux.HandleFunc("GET /api/settings", settingHandler.Get)

	// Admin routes. Authentication is enforced upstream by the gateway.
	mux.HandleFunc("GET /api/admin/messages", messageHandler.List)
	mux.HandleFunc("GET /api/admin/messages/{id}", messageHandler.Get)
	mux.HandleFunc("PATCH /api/admin/messages/status", messageHandler.BulkUpdateStatus)
	mux.HandleFunc("PATCH /api/admin/messages/{id}/status", messageHandler.UpdateStatus)
	mux.HandleFunc("POST /api/admin/messages/{id}/toggle", messageHandler.ToggleResolved)
	mux.HandleFunc("POST /api/admin/messages/{id}/notes", messageHandler.AddNote)
	mux.HandleFunc("POST /api/admin/messages/{id}/activities", messageHandler.AddActivity)
	mux.HandleFunc("POST /api/admin/messages/{id}/reply", messageHandler.Reply)
	mux.HandleFunc("DELETE /api/admin/messages/{id}", messageHandler.Delete)
	mux.HandleFunc("GET /api/admin/settings", settingHandler.GetFresh)
	mux.HandleFunc("PUT /api/admin/settings", settingHandler.Update)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      h.CORS(handler.RequestLogger(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
