package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/somnath11som/webeF/internal/auth"
	"github.com/somnath11som/webeF/internal/catalog"
	"github.com/somnath11som/webeF/internal/checkout"
	"github.com/somnath11som/webeF/internal/config"
	"github.com/somnath11som/webeF/internal/contact"
	"github.com/somnath11som/webeF/internal/events"
	h "github.com/somnath11som/webeF/internal/http"
	"github.com/somnath11som/webeF/internal/logger"
	"github.com/somnath11som/webeF/internal/orders"
	"github.com/somnath11som/webeF/internal/remote"
	"github.com/somnath11som/webeF/internal/storage"
	"github.com/somnath11som/webeF/internal/visitor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP server",
	Long: `Run the storefront HTTP server until interrupted.

Sessions are mirrored to Redis when REDIS_ADDR is set and kept in memory
otherwise. Order events go to Kafka when KAFKA_BROKERS is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		zap.ReplaceGlobals(log)

		return serve(cmd.Context(), cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type eventPublisher interface {
	checkout.Publisher
	Close() error
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer repo.Close()
	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}

	kv, closeKV, err := openKV(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	var publisher eventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		log.Info("publishing order events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close event publisher", zap.Error(err))
		}
	}()

	client := remote.NewClient(remote.Config{
		OrdersBaseURL:   cfg.OrdersAPIURL,
		AccountsBaseURL: cfg.AccountsAPIURL,
		Timeout:         cfg.RequestTimeout,
	})

	visitors := visitor.NewRegistry(kv, log.Named("visitor"))
	if cfg.VisitorIdleTimeout > 0 {
		go visitors.Run(ctx, cfg.VisitorSweepPeriod, cfg.VisitorIdleTimeout)
	}
	handlers := h.Handlers{
		Catalog:  h.NewCatalogHandler(repo, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(repo, checkout.NewPromotions(cfg.PromoCodes), cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(checkout.NewService(client, publisher, cfg.CartClearDelay, log.Named("checkout")), cfg.RequestTimeout),
		Auth:     h.NewAuthHandler(auth.NewService(client, log.Named("auth")), cfg.RequestTimeout),
		Orders:   h.NewOrdersHandler(orders.NewClient(client, log.Named("orders")), cfg.RequestTimeout),
		Contact:  h.NewContactHandler(contact.NewService(client, repo, log.Named("contact")), cfg.RequestTimeout),
	}

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: h.NewRouter(h.RouterConfig{
			RequestTimeout:     cfg.RequestTimeout,
			MaxRequestBodySize: cfg.MaxRequestBodySize,
		}, visitors, handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

func openKV(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.KV, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory")
		return storage.NewMemoryKV(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Info("session storage on redis", zap.String("addr", cfg.RedisAddr))
	return storage.NewRedisKV(client), func() {
		if err := client.Close(); err != nil {
			log.Warn("close redis client", zap.Error(err))
		}
	}, nil
}
