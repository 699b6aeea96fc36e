package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/db"
	"github.com/mrdavis-dev/carwash-cloud-api/internal/handlers"
	"github.com/mrdavis-dev/carwash-cloud-api/internal/middleware"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = 60 // seconds
)

func newRouter(cars *handlers.CarsHandler, assignments *handlers.AssignmentsHandler) http.Handler {
	router := mux.NewRouter().StrictSlash(true)

	router.Use(middleware.RequestLogger)
	router.Use(middleware.NewRateLimitMiddleware().RateLimit(rateLimitRequests, rateLimitWindow))

	router.HandleFunc("/", handlers.Root).Methods("GET")
	router.HandleFunc("/health", handlers.Health).Methods("GET")

	router.HandleFunc("/cars/", cars.Register).Methods("POST")
	router.HandleFunc("/cars/", cars.List).Methods("GET")
	router.HandleFunc("/cars/{plate}", cars.Get).Methods("GET")
	router.HandleFunc("/cars/{plate}/history", cars.History).Methods("GET")

	router.HandleFunc("/assignments/", assignments.Create).Methods("POST")
	router.HandleFunc("/assignments/", assignments.ListPending).Methods("GET")
	router.HandleFunc("/assignments/{id}/complete", assignments.Complete).Methods("PUT")

	// mux applies Use middlewares only when a route fully matches, and a
	// browser preflight OPTIONS never matches the method-restricted routes.
	// CORS wraps the router itself so preflights are still answered.
	return middleware.NewCORSMiddleware([]string{"*"}).Handler(router)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "carwash_db"
	}
	store := db.NewStore(client, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	carsHandler := handlers.NewCarsHandler(store.Cars, store.Assignments)
	assignmentsHandler := handlers.NewAssignmentsHandler(store.Assignments, store.Cars)
	router := newRouter(carsHandler, assignmentsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("port", port).Info("car wash API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Errorf("Mongo disconnect error: %v", err)
	}

	log.Info("server stopped")
}
