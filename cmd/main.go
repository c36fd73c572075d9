// @title AirEscape Backend API
// @version 1.0
// @description AirEscape RESTful API for flight search, hotel stays, bookings and M-Pesa payments
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
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	_ "AIRESCAPE_BACK-END/docs" // This is required for swagger
	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/handlers"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/mpesa"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/routes"
	"AIRESCAPE_BACK-END/internal/tickets"
	"AIRESCAPE_BACK-END/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()
	log.Printf("Connected to database %s on %s:%s", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	store := repository.NewStore(pool, cfg.Database.QueryTimeout)

	// --- HTTP Handlers ---

	var mailer utils.Mailer
	if cfg.IsEmailConfigured() {
		mailer = utils.NewEmailService(&cfg.Email)
	} else {
		log.Println("Warning: SMTP is not configured, reset codes will only be logged")
	}
	if !cfg.IsGoogleOAuthConfigured() {
		log.Println("Warning: Google OAuth is not configured")
	}
	if !cfg.IsPaymentConfigured() {
		log.Println("Warning: M-Pesa credentials are not configured, /stkpush will fail")
	}

	h := routes.Handlers{
		Health:         handlers.NewHealthHandler(store),
		Auth:           handlers.NewAuthHandler(store, &cfg.JWT),
		ForgotPassword: handlers.NewForgotPasswordHandler(store, store, mailer, &cfg.JWT, cfg.IsDevelopment()),
		GoogleAuth:     handlers.NewGoogleAuthHandler(store, cfg),
		Users:          handlers.NewUsersHandler(store),
		Flights:        handlers.NewFlightsHandler(store, cfg.Search),
		Hotels:         handlers.NewHotelsHandler(store),
		UserTrips:      handlers.NewUserTripsHandler(store, store, store),
		Bookings:       handlers.NewBookingsHandler(store, store, store, store, tickets.NewIssuer(cfg.Ticket.SigningSecret), mailer),
		Payments:       handlers.NewPaymentsHandler(mpesa.NewClient(cfg.Payment, nil)),
	}

	policy := middleware.NewAccessPolicy(&cfg.JWT, store)
	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	router := routes.SetupRoutes(h, policy, limiter)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	handler := middleware.RequestID(middleware.Logging(middleware.SecurityHeaders(c.Handler(router))))

	// --- HTTP Server + Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
