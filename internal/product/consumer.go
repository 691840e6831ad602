package product

import (
	"context"

	"github.com/glowmart/storefront/internal/product/usecase/command"
	"github.com/glowmart/storefront/kafka"
	"github.com/glowmart/storefront/pkg/logger"
)

// StockConsumer applies completed checkouts to product stock levels.
type StockConsumer struct {
	consumer      *kafka.Consumer
	deductHandler *command.DeductStockHandler
}

// NewStockConsumer creates a consumer that listens for checkout events and
// decrements stock for each purchased line item.
func NewStockConsumer(brokers []string, deductHandler *command.DeductStockHandler) (*StockConsumer, error) {
	consumer, err := kafka.NewConsumer(brokers, "product-service", []string{kafka.TopicCheckoutCompleted})
	if err != nil {
		return nil, err
	}

	sc := &StockConsumer{
		consumer:      consumer,
		deductHandler: deductHandler,
	}

	consumer.RegisterHandler(kafka.EventTypeCheckoutCompleted, sc.handleCheckoutCompleted)

	return sc, nil
}

// Start begins consuming checkout events until the context is cancelled.
func (sc *StockConsumer) Start(ctx context.Context) error {
	return sc.consumer.Start(ctx)
}

// Close closes the underlying Kafka consumer.
func (sc *StockConsumer) Close() error {
	return sc.consumer.Close()
}

func (sc *StockConsumer) handleCheckoutCompleted(ctx context.Context, event kafka.CheckoutCompletedEvent) error {
	for _, item := range event.Items {
		cmd := command.DeductStockCommand{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		if err := sc.deductHandler.Handle(cmd); err != nil {
			// A missing product must not wedge the consumer group, so log
			// and keep applying the remaining line items.
			logger.Logger.Error().
				Err(err).
				Str("order_id", event.OrderID).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("Failed to deduct stock for line item")
			continue
		}

		logger.Logger.Info().
			Str("order_id", event.OrderID).
			Str("product_id", item.ProductID).
			Int("quantity", item.Quantity).
			Msg("Stock deducted for line item")
	}

	return nil
}
