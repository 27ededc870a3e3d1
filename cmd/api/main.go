package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/snackschicken/delivery-api/internal/auth"
	"github.com/snackschicken/delivery-api/internal/config"
	"github.com/snackschicken/delivery-api/internal/order"
	"github.com/snackschicken/delivery-api/internal/postgres"
	"github.com/snackschicken/delivery-api/internal/product"
	"github.com/snackschicken/delivery-api/internal/stats"
	"github.com/snackschicken/delivery-api/internal/user"
)

// @title          Snacks Chicken Delivery API
// @version        1.0
// @description    Food-ordering backend: public menu and checkout, admin product and order management.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[api] postgres: %v", err)
	}
	defer pg.Close()

	tokens := auth.NewJWT(cfg.JWTSecret, 7*24*time.Hour)
	d := deps{
		cfg:      cfg,
		products: product.NewService(product.NewPGRepo(pg.Pool())),
		orders: order.NewService(order.NewPGRepo(pg.Pool()), order.PixConfig{
			Key:          cfg.PixKey,
			MerchantName: cfg.PixMerchantName,
			MerchantCity: cfg.PixMerchantCity,
		}),
		stats:  stats.NewService(stats.NewPGRepo(pg.Pool())),
		users:  user.NewPGRepo(pg.Pool()),
		tokens: tokens,
		authn:  tokens,
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: newRouter(d)}
	go func() {
		log.Printf("[api] listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[api] serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[api] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] shutdown: %v", err)
	}
}
