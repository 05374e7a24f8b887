// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nimakarimi/portfolio-api/internal/config"
	"github.com/nimakarimi/portfolio-api/internal/domain"
	"github.com/nimakarimi/portfolio-api/internal/handlers"
	"github.com/nimakarimi/portfolio-api/internal/middleware"
	"github.com/nimakarimi/portfolio-api/internal/ratelimit"
	otprepo "github.com/nimakarimi/portfolio-api/internal/repository/otp"
	postrepo "github.com/nimakarimi/portfolio-api/internal/repository/post"
	"github.com/nimakarimi/portfolio-api/internal/services"
	contactsvc "github.com/nimakarimi/portfolio-api/internal/services/contact"
	"github.com/nimakarimi/portfolio-api/internal/services/mail"
	otpsvc "github.com/nimakarimi/portfolio-api/internal/services/otp"
	postsvc "github.com/nimakarimi/portfolio-api/internal/services/post"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-OTP-Code")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// newCodeStore picks the code store backend from configuration.
func newCodeStore(cfg *config.Config, db *gorm.DB) otprepo.CodeStore {
	switch cfg.OTPStore {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Redis unreachable at %s: %v", cfg.RedisAddr, err)
		}
		return otprepo.NewRedisCodeStore(client)
	case "memory":
		return otprepo.NewMemoryCodeStore()
	default:
		if err := db.AutoMigrate(&domain.OneTimeCode{}); err != nil {
			log.Fatalf("DB Migration Error: %v", err)
		}
		return otprepo.NewGormCodeStore(db)
	}
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("portfolio-api")

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}
	if err := db.AutoMigrate(&domain.Post{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Stores ---
	codeStore := newCodeStore(cfg, db)
	postRepo := postrepo.NewGormPostRepository(db)

	// --- Notifier ---
	mailCfg := &mail.Config{
		RelayURL:  cfg.MailRelayURL,
		AccessKey: cfg.MailRelayKey,
		Timeout:   10 * time.Second,
	}
	if err := mailCfg.Validate(); err != nil {
		log.Fatalf("Mail relay config error: %v", err)
	}
	relay := mail.NewRelayProvider(mailCfg)

	contactRelay := relay
	if cfg.ContactForwardURL != "" && cfg.ContactForwardURL != cfg.MailRelayURL {
		contactRelay = mail.NewRelayProvider(&mail.Config{
			RelayURL:  cfg.ContactForwardURL,
			AccessKey: cfg.MailRelayKey,
			Timeout:   10 * time.Second,
		})
	}

	// --- Services ---
	issuer := otpsvc.NewIssuer(codeStore, relay, logger)
	verifier := otpsvc.NewVerifier(codeStore, logger)
	postService := postsvc.NewService(postRepo, logger)
	contactService := contactsvc.NewService(contactRelay, logger)

	// --- Handlers ---
	otpHandler := handlers.NewOTPHandler(issuer, verifier, postService, cfg.OTPRecipient)
	postHandler := handlers.NewPostHandler(postService)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Rate limiters ---
	otpLimiter := ratelimit.NewMemoryLimiter(ratelimit.StrictConfig())
	contactLimiter := ratelimit.NewMemoryLimiter(ratelimit.DefaultConfig())
	defer otpLimiter.Close()
	defer contactLimiter.Close()

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts", postHandler.List).Methods("GET")
	api.HandleFunc("/posts", postHandler.Create).Methods("POST")
	api.HandleFunc("/posts/{id}", postHandler.Get).Methods("GET")
	api.HandleFunc("/posts/{id}", postHandler.Update).Methods("PUT")
	api.HandleFunc("/posts/{id}", otpHandler.DeletePost).Methods("DELETE")

	otpRoutes := api.PathPrefix("/otp").Subrouter()
	otpRoutes.Use(middleware.RateLimit(otpLimiter, "otp-request"))
	otpRoutes.HandleFunc("/request", otpHandler.RequestCode).Methods("POST")

	contactRoutes := api.PathPrefix("/contact").Subrouter()
	contactRoutes.Use(middleware.RateLimit(contactLimiter, "contact"))
	contactRoutes.HandleFunc("", contactHandler.Submit).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	logger.Info("server starting", "port", cfg.ServerPort, "otp_store", cfg.OTPStore)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
