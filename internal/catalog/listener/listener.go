package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/internal/catalog"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the slice of kafka.Reader the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// StockListener applies authoritative stock levels from the back office to
// the terminal's local mirror, superseding optimistic post-sale decrements.
type StockListener struct {
	reader     MessageReader
	uc         catalog.UseCase
	merchantID string
	logger     logger.ZapLogger
}

func NewStockListener(reader MessageReader, uc catalog.UseCase, merchantID string, log logger.ZapLogger) *StockListener {
	return &StockListener{
		reader:     reader,
		uc:         uc,
		merchantID: merchantID,
		logger:     log,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting Stock Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Stock Kafka Listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(msg.Value)
		}
	}
}

type InventoryAdjustedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   InventoryPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type InventoryPayload struct {
	MerchantID    string  `json:"merchant_id"`
	ProductID     string  `json:"product_id"`
	QuantityAfter float64 `json:"quantity_after"`
}

func (l *StockListener) processMessage(value []byte) {
	var event InventoryAdjustedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "InventoryAdjusted" {
		return
	}
	if event.Payload.MerchantID != l.merchantID {
		return
	}

	l.logger.Info("Applying stock level from event",
		zap.String("product_id", event.Payload.ProductID),
		zap.Float64("quantity_after", event.Payload.QuantityAfter),
	)
	l.uc.ApplyStockLevel(event.Payload.ProductID, int(event.Payload.QuantityAfter))
}
