package cmd

import (
	"context"
	"errors"

	"github.com/somnath11som/webeF/internal/events"
	"github.com/somnath11som/webeF/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var eventsGroup string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow the order events published by checkout",
	Long: `Consume order.created events from the configured Kafka topic and log
each one until interrupted. Useful to check the event stream that CRM sync and
analytics read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.KafkaBrokers) == 0 {
			return errors.New("no kafka brokers configured (set KAFKA_BROKERS)")
		}

		log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		consumer := events.NewConsumer(cfg.KafkaTopic, eventsGroup, logOrderEvent(log), log, cfg.KafkaBrokers...)
		defer func() {
			if err := consumer.Close(); err != nil {
				log.Warn("close kafka reader", zap.Error(err))
			}
		}()

		log.Info("following order events", zap.String("topic", cfg.KafkaTopic), zap.String("group", eventsGroup))
		consumer.Run(cmd.Context())
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsGroup, "group", "storefront-events", "Kafka consumer group")
	rootCmd.AddCommand(eventsCmd)
}

func logOrderEvent(log *zap.Logger) events.OrderHandler {
	return func(_ context.Context, ev events.OrderCreated) error {
		log.Info("order created",
			zap.String("checkout_id", ev.CheckoutID),
			zap.String("visitor_id", ev.VisitorID),
			zap.Float64("amount", ev.Amount),
			zap.Float64("discount", ev.DiscountPercent),
			zap.String("promo_code", ev.PromoCode),
			zap.Strings("items", ev.ItemIDs),
			zap.Time("created_at", ev.CreatedAt))
		return nil
	}
}
