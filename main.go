package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/nutshop/internal/api"
	"github.com/nikolayk812/nutshop/internal/checkout"
	"github.com/nikolayk812/nutshop/internal/config"
	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/logger"
	"github.com/nikolayk812/nutshop/internal/notify"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/nikolayk812/nutshop/internal/repository"
	"github.com/nikolayk812/nutshop/internal/service"
	"github.com/nikolayk812/nutshop/internal/template"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "nutshop",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	for _, problem := range cfg.Warnings() {
		log.Warn("configuration problem", "error", problem)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("nutshop stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("repository.NewPool: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}

	notifier, closeNotifier, err := buildNotifier(cfg, log)
	if err != nil {
		return fmt.Errorf("buildNotifier: %w", err)
	}
	defer closeNotifier()

	services, err := buildServices(ctx, cfg, repositories{
		products: repository.NewProduct(pool),
		orders:   repository.NewOrder(pool),
		carts:    repository.NewCart(pool),
		admins:   repository.NewAdmin(pool),
		sessions: repository.NewSession(pool),
	}, notifier, log)
	if err != nil {
		return fmt.Errorf("buildServices: %w", err)
	}

	mode := gin.DebugMode
	if cfg.AppEnv == "prod" {
		mode = gin.ReleaseMode
	}

	router, err := api.NewRouter(services, api.Options{
		Mode:          mode,
		SecureCookies: cfg.AppEnv == "prod",
	})
	if err != nil {
		return fmt.Errorf("api.NewRouter: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		services.Carts.RunSweeper(gCtx, max(cfg.CartIdleTTL/4, time.Second), cfg.CartIdleTTL)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("bye")
	return nil
}

type repositories struct {
	products port.ProductRepository
	orders   port.OrderRepository
	carts    port.CartRepository
	admins   port.AdminRepository
	sessions port.SessionRepository
}

func buildServices(ctx context.Context, cfg config.Config, repos repositories, notifier port.Notifier, log *slog.Logger) (api.Services, error) {
	policy := domain.DeliveryPolicy{
		FreeThreshold: cfg.DeliveryFreeThreshold,
		FlatFee:       cfg.DeliveryFlatFee,
	}

	catalog, err := service.NewCatalog(repos.products)
	if err != nil {
		return api.Services{}, fmt.Errorf("service.NewCatalog: %w", err)
	}

	submit, err := service.NewCheckout(repos.orders, notifier, checkout.Options{
		Policy:        policy,
		StoreTimeout:  cfg.StoreTimeout,
		NotifyTimeout: cfg.NotifyTimeout,
	})
	if err != nil {
		return api.Services{}, fmt.Errorf("service.NewCheckout: %w", err)
	}

	carts, err := service.NewCartStore(catalog, submit, repos.carts, policy)
	if err != nil {
		return api.Services{}, fmt.Errorf("service.NewCartStore: %w", err)
	}

	lifecycle, err := service.NewLifecycle(repos.orders, notifier, service.LifecycleOptions{
		StoreTimeout:  cfg.StoreTimeout,
		NotifyTimeout: cfg.NotifyTimeout,
	})
	if err != nil {
		return api.Services{}, fmt.Errorf("service.NewLifecycle: %w", err)
	}

	auth, err := service.NewAuth(repos.admins, repos.sessions, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return api.Services{}, fmt.Errorf("service.NewAuth: %w", err)
	}

	if cfg.AdminEmail != "" {
		if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return api.Services{}, fmt.Errorf("auth.EnsureAdmin: %w", err)
		}
	} else {
		log.Warn("ADMIN_EMAIL is not set, no admin account bootstrapped")
	}

	dashboard, err := service.NewDashboard(repos.orders)
	if err != nil {
		return api.Services{}, fmt.Errorf("service.NewDashboard: %w", err)
	}

	return api.Services{
		Catalog:   catalog,
		Carts:     carts,
		Lifecycle: lifecycle,
		Auth:      auth,
		Dashboard: dashboard,
	}, nil
}

// buildNotifier fans out to every configured channel; with none configured orders are still placed.
func buildNotifier(cfg config.Config, log *slog.Logger) (port.Notifier, func(), error) {
	var (
		notifiers []port.Notifier
		closers   []func()
	)

	if cfg.TelegramEnabled() {
		engine, err := template.NewEngine()
		if err != nil {
			return nil, nil, fmt.Errorf("template.NewEngine: %w", err)
		}

		telegram, err := notify.NewTelegram(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, engine,
			&http.Client{Timeout: cfg.NotifyTimeout})
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewTelegram: %w", err)
		}
		notifiers = append(notifiers, telegram)
	} else {
		log.Warn("telegram is not configured, order notifications are not sent to the shop")
	}

	if cfg.KafkaEnabled() {
		kafka, err := notify.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, fmt.Errorf("notify.NewKafka: %w", err)
		}
		notifiers = append(notifiers, kafka)
		closers = append(closers, kafka.Close)
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	return notify.Combine(notifiers...), closeAll, nil
}
