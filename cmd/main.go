// @title FindMe Backend API
// @version 1.0
// @description FindMe Backend API for keeping track of people in care
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	_ "FINDME_BACK-END/docs" // This is required for swagger
	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/handlers"
	"FINDME_BACK-END/internal/migrations"
	"FINDME_BACK-END/internal/routes"
	"FINDME_BACK-END/internal/storage"
	"FINDME_BACK-END/internal/utils"
	"FINDME_BACK-END/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dsn := cfg.GetDSN()

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if err := migrations.Run(ctx, dsn); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		cancel()
	}

	// pgxpool with the simple protocol so the pool works behind PgBouncer
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "findme-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000" // 30s
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("ping: %v", err)
		}
	}

	// --- Image storage ---
	var images storage.Store
	switch cfg.Storage.Driver {
	case "s3":
		images, err = storage.NewS3Store(context.Background(), &cfg.Storage)
		if err != nil {
			log.Fatalf("s3 storage: %v", err)
		}
	default:
		images, err = storage.NewDiskStore(cfg.Storage.UploadDir)
		if err != nil {
			log.Fatalf("disk storage: %v", err)
		}
	}

	// --- Verification code stores ---
	// Registration and password-reset codes live in separate stores so a
	// reset code can never complete a registration.
	var registerStore, resetStore verification.CodeStore
	if cfg.Verification.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Verification.RedisAddr,
			Password: cfg.Verification.RedisPassword,
			DB:       cfg.Verification.RedisDB,
		})
		{
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Fatalf("redis ping: %v", err)
			}
		}
		registerStore = verification.NewRedisStore(rdb, "verify:register", cfg.Verification.CodeTTL)
		resetStore = verification.NewRedisStore(rdb, "verify:reset", cfg.Verification.CodeTTL)
	} else {
		registerStore = verification.NewMemoryStore(cfg.Verification.CodeTTL)
		resetStore = verification.NewMemoryStore(cfg.Verification.CodeTTL)
	}

	emailService := utils.NewEmailService(&cfg.Email)
	registerLedger := verification.NewLedger(registerStore,
		verification.SenderFunc(emailService.SendVerificationCode))
	resetLedger := verification.NewLedger(resetStore,
		verification.SenderFunc(emailService.SendPasswordResetCode))

	// --- HTTP Handlers ---
	authHandler := handlers.NewAuthHandler(pool, registerLedger, cfg)
	forgotPasswordHandler := handlers.NewForgotPasswordHandler(pool, resetLedger, cfg)
	profileHandler := handlers.NewProfileHandler(pool, images, cfg)
	peopleHandler := handlers.NewPeopleHandler(pool, images, cfg)
	locationHandler := handlers.NewLocationHandler(pool, cfg)
	googleAuthHandler := handlers.NewGoogleAuthHandler(pool, cfg)
	healthHandler := handlers.NewHealthHandler(pool)

	routes.SetupRoutes(cfg, authHandler, forgotPasswordHandler, profileHandler,
		peopleHandler, locationHandler, googleAuthHandler, healthHandler)

	// --- HTTP Server + Graceful Shutdown ---
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})
	handler := c.Handler(http.DefaultServeMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
