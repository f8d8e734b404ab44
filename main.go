// Entry point for the blogger API server. Wires configuration, the
// database pool, migrations, services, handlers, middleware and the HTTP
// router, then runs the server with graceful shutdown.
//
// @title Blogger API
// @version 1.0
// @description REST backend for a blogging platform: users, posts and comments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
	"github.com/user/blogger-go/background"
	"github.com/user/blogger-go/comments"
	"github.com/user/blogger-go/config"
	"github.com/user/blogger-go/db"
	_ "github.com/user/blogger-go/docs" // Generated Swagger docs
	"github.com/user/blogger-go/events"
	"github.com/user/blogger-go/posts"
	"github.com/user/blogger-go/ratelimit"
	"github.com/user/blogger-go/users"
)

func main() {
	// .env is a development convenience; production sets real env vars.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer dbPool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The in-process event bus carries post activity to the background
	// recorder. stopChan tells the recorder to drain and exit on shutdown.
	bus := events.NewBus()
	recorderStopChan := make(chan struct{})
	background.StartActivityRecorder(dbPool, bus, recorderStopChan)
	log.Println("Background activity recorder started.")

	// Services hold the business logic; handlers adapt them to HTTP.
	// Dependencies are injected by hand through the constructors.
	tokenService := auth.NewTokenService(*cfg.Auth)

	userService := users.NewUserService(dbPool, tokenService)
	userHandlers := users.NewUserHandlers(userService)

	commentService := comments.NewCommentService(dbPool, bus)
	commentHandlers := comments.NewCommentHandler(commentService)

	postService := posts.NewPostService(dbPool, bus, commentService)
	postHandlers := posts.NewPostHandlers(postService)

	limiter := ratelimit.New(cfg.RateLimit)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		// Open CORS policy; restrict AllowedOrigins for production.
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(limiter.Handler)

	// Panic recovery that reports through the standard error envelope.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	jwtGate := auth.JWTMiddleware(tokenService)

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", userHandlers.HandleRegister())
		r.Post("/login", userHandlers.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(jwtGate)
			r.Get("/{userId}", userHandlers.HandleGetUser())
			r.Put("/update/{userId}", userHandlers.HandleUpdateUser())
			r.Delete("/delete/{userId}", userHandlers.HandleDeleteUser())
		})
	})

	r.Route("/post", func(r chi.Router) {
		// Listing and single-post reads are public.
		r.Get("/", postHandlers.HandleList())
		r.Get("/{postId}", postHandlers.HandleGet())

		r.Group(func(r chi.Router) {
			r.Use(jwtGate)
			r.Get("/user-post", postHandlers.HandleUserPosts())
			r.Post("/", postHandlers.HandleCreate())
			r.Put("/{postId}", postHandlers.HandleUpdate())
			r.Delete("/{postId}", postHandlers.HandleDelete())
		})
	})

	r.Route("/comment", func(r chi.Router) {
		r.Use(jwtGate)
		commentHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The recorder drains pending events after the stop signal; the server
	// then stops accepting new requests and finishes in-flight ones.
	log.Println("Signaling background activity recorder to stop...")
	close(recorderStopChan)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError reports a panic through the same JSON envelope the handlers
// use. Kept local so the recovery middleware has no handler dependencies.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"data":null,"message":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
