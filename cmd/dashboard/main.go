package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/backend"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/handlers"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/notify"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/session"
	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, relying on environment variables")
	}

	validateEnv()

	guard := &session.Guard{
		Secret:         []byte(os.Getenv("JWT_SECRET")),
		ProviderDomain: os.Getenv("IDP_DOMAIN"),
		ClientID:       os.Getenv("IDP_CLIENT_ID"),
		ReturnURL:      os.Getenv("APP_URL"),
	}

	// one service credential for backend calls; per-user authorization
	// happens at the session guard
	client := backend.NewClient(os.Getenv("BACKEND_URL"), os.Getenv("BACKEND_TOKEN"))
	notifier := notify.NewCenter(notify.DefaultTTL)

	handler := &handlers.Handler{
		Guard:    guard,
		Tasks:    store.NewTaskStore(client, notifier),
		Users:    store.NewUserStore(client, notifier),
		Notifier: notifier,
	}

	server := &http.Server{
		Addr:    ":" + os.Getenv("SERVER_PORT"),
		Handler: handler.Routes(),
	}
	startServer(server)
}

func validateEnv() {
	requiredEnvVars := []string{
		"SERVER_PORT", "JWT_SECRET", "BACKEND_URL",
		"IDP_DOMAIN", "IDP_CLIENT_ID", "APP_URL",
	}
	for _, env := range requiredEnvVars {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s must be set", env)
		}
	}
}

func startServer(server *http.Server) {
	log.Printf("Starting dashboard server on %s", server.Addr)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
