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

	"github.com/gojo-homes/api/internal/config"
	"github.com/gojo-homes/api/internal/infrastructure/cache"
	"github.com/gojo-homes/api/internal/infrastructure/dynamo"
	"github.com/gojo-homes/api/internal/infrastructure/email"
	jwtinfra "github.com/gojo-homes/api/internal/infrastructure/jwt"
	"github.com/gojo-homes/api/internal/infrastructure/ses"
	"github.com/gojo-homes/api/internal/infrastructure/smtp"
	"github.com/gojo-homes/api/internal/infrastructure/sns"
	transporthttp "github.com/gojo-homes/api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional, graceful fallback if the key is missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Email: SMTP relay first, SES as the fallback provider when available.
	var sesMailer email.Sender
	if m, err := ses.NewMailer(cfg); err == nil {
		sesMailer = m
	} else {
		log.Printf("WARN: SES mailer not available: %v", err)
	}
	mailer := email.NewFailover(smtp.NewMailer(cfg), sesMailer)

	// SNS SMS sender (optional, graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	// Redis browse cache (optional).
	var listingCache *cache.ListingCache
	if cfg.RedisAddr != "" {
		if c, err := cache.New(cfg); err == nil {
			listingCache = c
		} else {
			log.Printf("WARN: redis cache not available: %v", err)
		}
	}

	deps := &transporthttp.Deps{
		ListingRepo:      dynamo.NewListingRepo(dynamoClient, cfg.DynamoTables.Listings),
		SavedSearchRepo:  dynamo.NewSavedSearchRepo(dynamoClient, cfg.DynamoTables.SavedSearches),
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		FavoriteRepo:     dynamo.NewFavoriteRepo(dynamoClient, cfg.DynamoTables.Favorites),
		SiteVisitRepo:    dynamo.NewSiteVisitRepo(dynamoClient, cfg.DynamoTables.SiteVisits),
		Cache:            listingCache,
		Email:            mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
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
