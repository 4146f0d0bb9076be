// Package consumer bridges inbound Kafka commands to application services.
package consumer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shareloop/service-rental/internal/application"
	"github.com/shareloop/service-rental/internal/domain"
	"github.com/shareloop/service-rental/internal/events"
	"go.uber.org/zap"
)

// CancellationConsumer listens for booker-initiated cancellation requests
// from the booker-facing service and applies them to stored bookings.
type CancellationConsumer struct {
	consumer *events.Consumer
	service  *application.BookingService
	logger   *zap.Logger
}

// NewCancellationConsumer creates a new CancellationConsumer.
func NewCancellationConsumer(
	brokers []string,
	groupID string,
	service *application.BookingService,
	logger *zap.Logger,
) *CancellationConsumer {
	c := events.NewConsumer(brokers, groupID, events.TopicBookingCommands, logger)
	return &CancellationConsumer{
		consumer: c,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming cancellation commands. Blocks until the context is
// cancelled.
func (c *CancellationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CancellationConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CancellationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := events.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from command topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	if cloudEvent.Type != events.BookingCancellationRequested {
		c.logger.Debug("ignoring unhandled command type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}

	var evt events.BookingCancellationRequestedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse cancellation request data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	if _, err = c.service.CancelBooking(ctx, evt.BookingID, evt.BookerID); err != nil {
		// Business-rule rejections are terminal for this message; only
		// infrastructure failures are worth stopping the loop for.
		if domain.CodeOf(err) != "" {
			c.logger.Warn("cancellation request rejected",
				zap.String("booking_id", evt.BookingID.String()),
				zap.String("reason", domain.CodeOf(err)),
			)
			return nil
		}
		c.logger.Error("failed to cancel booking",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking canceled via command",
		zap.String("booking_id", evt.BookingID.String()),
	)
	return nil
}
