package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"travelbook/config"
	"travelbook/db"
	"travelbook/globals"
	"travelbook/logger"
	"travelbook/mq"
	"travelbook/ratelim"
	"travelbook/rdx"
	"travelbook/routes"
	"travelbook/travel"
	"travelbook/travelhandlers"
	"travelbook/travelpdf"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "uri", r.RequestURI, "remote", r.RemoteAddr, "duration", time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

type stores struct {
	travels   travel.Store
	documents travel.DocumentStore
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		mem := travel.NewMemoryStore()
		return stores{travels: mem, documents: mem}, nil
	}
	if err := db.Connect(ctx, cfg, log); err != nil {
		return stores{}, err
	}
	s := db.NewTravelStore(db.TravelsCollection, db.DocumentsCollection)
	return stores{travels: s, documents: s}, nil
}

func main() {
	bootLog, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		bootLog = logger.NewNop()
	}
	cfg := config.Load(bootLog)
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	globals.JwtSecret = []byte(cfg.JWTSecret)

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("store init failed", "driver", cfg.StoreDriver, "error", err)
	}

	// redis is optional: without it there is no sub-query cache and
	// change events are only logged
	var cache travel.ItineraryCache
	var events mq.Emitter = mq.NewNotifier(log.Named("events"))
	conn, err := rdx.Connect(ctx, cfg)
	switch {
	case err != nil:
		log.Warn("redis unavailable; running without cache and events", "addr", cfg.RedisAddr, "error", err)
	case conn != nil:
		cache = rdx.NewItineraryCache(conn, cfg.CacheTTL, log.Named("cache"))
		events = mq.NewPublisher(conn, log.Named("events"))
		log.Info("connected to redis", "addr", cfg.RedisAddr)
	}

	opts := travel.Options{
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		WriteRetries:    cfg.WriteRetries,
		StatsScanLimit:  cfg.StatsScanLimit,
		StoreTimeout:    cfg.StoreTimeout,
	}
	coreLog := log.Named("travel")
	h := &travelhandlers.Handlers{
		Repo:      travel.NewRepository(st.travels, cache, opts, coreLog),
		Editor:    travel.NewEditor(st.travels, cache, opts, coreLog),
		Queries:   travel.NewQueries(st.travels, opts, coreLog),
		Documents: travel.NewDocuments(st.documents, st.travels, opts, coreLog),
		PDF:       travelpdf.NewRenderer(globals.JwtSecret),
		Events:    events,
		Log:       log.Named("http"),
	}

	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddTravelRoutes(router, h, rateLimiter)
	routes.AddItineraryRoutes(router, h, rateLimiter)
	routes.AddDocumentRoutes(router, h, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(log.Named("http"), securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		if conn != nil {
			if err := conn.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		}
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Disconnect(dctx); err != nil {
			log.Warn("mongo disconnect failed", "error", err)
		}
	})

	go func() {
		log.Info("server listening", "addr", cfg.Port, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received; shutting down gracefully")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(sctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return
	}
	log.Info("server stopped cleanly")
}
