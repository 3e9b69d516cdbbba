package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/taskapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, relying on environment variables")
	}

	validateEnv()
	dbConn := initDB()
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	handler := &taskapi.Handler{
		TaskRepo: taskapi.NewTaskRepository(dbConn),
		UserRepo: taskapi.NewUserRepository(dbConn),
		// allow max 5 login attempts per 15 minutes from the same IP
		RateLimiter: taskapi.NewRateLimiter(5, 15*time.Minute),
		Secret:      []byte(os.Getenv("JWT_SECRET")),
	}

	server := &http.Server{
		Addr:    ":" + os.Getenv("SERVER_PORT_API"),
		Handler: handler.Routes(),
	}
	startServer(server)
}

func validateEnv() {
	requiredEnvVars := []string{"SERVER_PORT_API", "JWT_SECRET"}
	for _, env := range requiredEnvVars {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s must be set", env)
		}
	}
	if len(os.Getenv("JWT_SECRET")) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
}

// initDB opens postgres when POSTGRES_HOST is configured, otherwise a local
// sqlite file so the service runs with no external dependencies.
func initDB() *sql.DB {
	if os.Getenv("POSTGRES_HOST") != "" {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"),
			os.Getenv("POSTGRES_PASSWORD"), os.Getenv("POSTGRES_DB"),
			os.Getenv("POSTGRES_PORT"))
		dbConn, err := taskapi.Connect("postgres", dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		return dbConn
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "./taskapi.db"
	}
	dbConn, err := taskapi.Connect("sqlite3", path)
	if err != nil {
		log.Fatalf("Failed to open sqlite database: %v", err)
	}
	if err := taskapi.CreateTables(dbConn); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	return dbConn
}

func startServer(server *http.Server) {
	log.Printf("Starting task API server on %s", server.Addr)

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
