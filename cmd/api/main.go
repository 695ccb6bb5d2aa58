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

	"github.com/email-verify-api/internal/config"
	"github.com/email-verify-api/internal/infrastructure/directory"
	"github.com/email-verify-api/internal/infrastructure/dynamo"
	"github.com/email-verify-api/internal/infrastructure/mail"
	transporthttp "github.com/email-verify-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// The directory owns the identity fact; without it no endpoint can work.
	if cfg.DirectoryURL == "" || cfg.DirectoryServiceKey == "" {
		log.Fatal("DIRECTORY_URL and DIRECTORY_SERVICE_KEY must be set")
	}
	if cfg.APISecretKey == "" {
		log.Println("WARN: API_SECRET_KEY not set — running in insecure mode, all requests are accepted")
	}

	// Bootstrap the DynamoDB codes table (creates it if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.VerificationCodesTable)

	deps := &transporthttp.Deps{
		Directory: directory.NewClient(cfg.DirectoryURL, cfg.DirectoryServiceKey),
		Codes:     dynamo.NewCodeRepo(dynamoClient, cfg.VerificationCodesTable),
		Mailer:    mail.NewMailer(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
