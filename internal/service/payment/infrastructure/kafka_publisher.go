// internal/service/payment/infrastructure/kafka_publisher.go
package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Kabudence/coupon-microservice/internal/pkg/logger"
	"github.com/Kabudence/coupon-microservice/internal/pkg/mq"
	"github.com/Kabudence/coupon-microservice/internal/service/payment/domain"
)

// WebhookReceivedMessage 是投递到 Kafka 的回调通知载荷，
// 消费方靠 event_id 回库取完整事件。
type WebhookReceivedMessage struct {
	EventID     int64  `json:"event_id"`
	Provider    string `json:"provider"`
	Env         string `json:"env"`
	DeliveryKey string `json:"delivery_key"`
	Topic       string `json:"topic,omitempty"`
	Action      string `json:"action,omitempty"`
	ResourceID  string `json:"resource_id,omitempty"`
}

// KafkaWebhookPublisher 把新落库的回调事件广播到消息总线
type KafkaWebhookPublisher struct {
	writer *kafka.Writer
}

func NewKafkaWebhookPublisher(writer *kafka.Writer) *KafkaWebhookPublisher {
	return &KafkaWebhookPublisher{writer: writer}
}

func (p *KafkaWebhookPublisher) PublishReceived(ctx context.Context, event *domain.WebhookEvent) error {
	payload, err := json.Marshal(WebhookReceivedMessage{
		EventID:     event.ID,
		Provider:    event.Provider,
		Env:         string(event.Env),
		DeliveryKey: event.DeliveryKey,
		Topic:       event.Topic,
		Action:      event.Action,
		ResourceID:  event.ResourceID,
	})
	if err != nil {
		return err
	}

	// 相同资源的事件落到同一分区，保证单资源内有序
	key := []byte(fmt.Sprintf("%s:%s:%s", event.Provider, event.Env, event.ResourceID))
	if err := mq.ProduceMessage(ctx, p.writer, key, payload); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().
		Int64("event_id", event.ID).
		Str("provider", event.Provider).
		Msg("✅ webhook event published")
	return nil
}
