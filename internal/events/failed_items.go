package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/daily-challenge-bot/internal/domain/entities"
	"github.com/aliskhannn/daily-challenge-bot/internal/engine"
)

const FailedItemsTopic = "failed_items"

const writeTimeout = 5 * time.Second

// FailedItemStore persists failed items.
type FailedItemStore interface {
	AddFailedItem(ctx context.Context, item entities.FailedItem) error
}

// FailedItemBus moves failed items from play sessions to the store in the
// background. Delivery is best effort: a failed write is logged and dropped.
type FailedItemBus struct {
	pubSub *gochannel.GoChannel
	store  FailedItemStore
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewFailedItemBus(store FailedItemStore, buffer int64, wmLogger watermill.LoggerAdapter, logger *zap.Logger) *FailedItemBus {
	return &FailedItemBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, wmLogger),
		store:  store,
		logger: logger,
	}
}

// Start subscribes to the topic and writes messages in a background worker
// until ctx is done or the bus is closed. Items published before Start are lost.
func (b *FailedItemBus) Start(ctx context.Context) error {
	messages, err := b.pubSub.Subscribe(ctx, FailedItemsTopic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", FailedItemsTopic, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			b.handle(ctx, msg)
		}
	}()

	return nil
}

func (b *FailedItemBus) handle(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var item entities.FailedItem
	if err := json.Unmarshal(msg.Payload, &item); err != nil {
		b.logger.Error("malformed failed item message", zap.String("message_id", msg.UUID), zap.Error(err))
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := b.store.AddFailedItem(writeCtx, item); err != nil {
		b.logger.Error("failed to store failed item",
			zap.Int64("user_id", item.UserID),
			zap.String("format", string(item.Format)),
			zap.Error(err),
		)
		return
	}

	b.logger.Debug("failed item stored", zap.Int64("user_id", item.UserID), zap.String("format", string(item.Format)))
}

// Publish hands item to the worker without waiting for the write.
func (b *FailedItemBus) Publish(item entities.FailedItem) {
	payload, err := json.Marshal(item)
	if err != nil {
		b.logger.Error("marshal failed item", zap.Error(err))
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.Metadata.Set("user_id", fmt.Sprint(item.UserID))
	msg.Metadata.Set("format", string(item.Format))

	if err := b.pubSub.Publish(FailedItemsTopic, msg); err != nil {
		b.logger.Warn("publish failed item", zap.Int64("user_id", item.UserID), zap.Error(err))
	}
}

// Recorder returns a recorder that tags items with userID before publishing.
func (b *FailedItemBus) Recorder(userID int64) engine.FailedItemRecorder {
	return engine.RecorderFunc(func(item entities.FailedItem) {
		item.UserID = userID
		b.Publish(item)
	})
}

// Close stops the worker after it has drained delivered messages.
func (b *FailedItemBus) Close() error {
	err := b.pubSub.Close()
	b.wg.Wait()
	return err
}
