package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/auth"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/hero"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/sequence"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		os.Exit(stopped(logger, err))
	}
}

// stopped logs the error that ended run and flushes the logger before the process exits.
func stopped(logger *zap.Logger, err error) int {
	logger.Error("storefront-service stopped", zap.Error(err))
	_ = logger.Sync()
	return 1
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.IsDev() {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "storefront-service")), nil
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			return err
		}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := db.NewPool(connectCtx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		return err
	}
	defer pool.Close()

	var publisher events.OrderPublisher = events.Noop{}
	if cfg.PublishEvents {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		p, err := events.NewPublisher(conn, sequence.NewRepository(pool), events.PublisherOptions{})
		if err != nil {
			return err
		}
		defer func() {
			if err := p.Close(); err != nil {
				logger.Warn("publisher close error", zap.Error(err))
			}
		}()
		publisher = p
	} else {
		logger.Info("event publishing disabled")
	}

	orders := order.NewService(order.NewPostgresRepository(pool), logger)
	carts := cart.NewManager(cart.NewPostgresStorage(pool), cfg.Pricing, logger)
	carts.SetIdleTimeout(cfg.CartIdleTimeout)

	h := httpapi.NewHandler(httpapi.Deps{
		Catalog:  catalog.NewPostgresRepository(pool),
		Carts:    carts,
		Checkout: checkout.NewService(orders, publisher, logger),
		Orders:   orders,
		Settings: settings.NewPostgresRepository(pool),
		Hero:     hero.NewPostgresRepository(pool),
		Verifier: auth.NewVerifier(cfg.AuthJWTSecret),
		Logger:   logger,
		Timeout:  cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(h, httpapi.RouterOptions{
			CORSAllowOrigins: cfg.CORSAllowOrigins,
			CheckoutLimiter:  httpapi.NewRateLimiter(cfg.CheckoutRateLimit, cfg.CheckoutBurst),
		}),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		carts.Run(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
