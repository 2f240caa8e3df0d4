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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lambrugeorge/colipop-site/internal/cart"
	"github.com/lambrugeorge/colipop-site/internal/catalog"
	"github.com/lambrugeorge/colipop-site/internal/config"
	h "github.com/lambrugeorge/colipop-site/internal/http"
	"github.com/lambrugeorge/colipop-site/internal/notify"
	"github.com/lambrugeorge/colipop-site/internal/order"
	"github.com/lambrugeorge/colipop-site/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Catalog
	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer repo.Close()
	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run catalog migrations: %v", err)
	}

	// Cart store: redis when configured, in-memory otherwise
	var cartStore store.CartStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		cartStore = store.NewRedisStore(client)
		log.Printf("using redis cart store at %s", cfg.RedisAddr)
	} else {
		memStore := store.NewMemoryStore()
		defer memStore.Close()
		cartStore = memStore
		log.Printf("using in-memory cart store")
	}

	carts := cart.NewService(cartStore)

	// Notification chain
	httpClient := &http.Client{Timeout: cfg.ChannelTimeout}
	channels, err := notify.BuildChain(cfg.Notify, httpClient)
	if err != nil {
		log.Fatalf("failed to build notification chain: %v", err)
	}
	notifier := notify.New(channels, cfg.ChannelTimeout)
	orders := order.NewService(notifier)

	productsHandler := h.NewProductsHandler(repo, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(carts, repo, cfg.RequestTimeout)
	orderHandler := h.NewOrderHandler(orders, carts, cfg.RequestTimeout)
	contactHandler := h.NewContactHandler(orders, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productsHandler.ListProducts)
		r.Get("/products/{product_id}", productsHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Post("/coupon", cartHandler.ApplyCoupon)
			r.Delete("/coupon", cartHandler.RemoveCoupon)
		})

		r.Post("/orders", orderHandler.SubmitOrder)
		r.Post("/contact", contactHandler.SubmitContact)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "colipop-site"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("ColiPop site starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
