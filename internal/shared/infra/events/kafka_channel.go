package events

import (
	"context"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/relayer"
)

// KafkaChannel publica eventos de dominio en un topic de Kafka.
// La key del mensaje es la routing key domain.<kind>, para que los
// consumidores filtren por tipo sin deserializar el payload.
//
// Si la escritura falla se descarta el writer cacheado: la siguiente
// llamada reconstruye la conexión (self-healing del canal).
type KafkaChannel struct {
	brokers []string
	topic   string
	log     *zap.Logger

	mu     sync.Mutex
	writer *kafka.Writer
}

func NewKafkaChannel(brokers []string, topic string, log *zap.Logger) *KafkaChannel {
	return &KafkaChannel{brokers: brokers, topic: topic, log: log}
}

func (c *KafkaChannel) Publish(ctx context.Context, e sharedEvents.DomainEvent) error {
	body, err := sharedEvents.Encode(e)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte("domain." + e.Kind()),
		Value: body,
	}

	if err := c.getWriter().WriteMessages(ctx, msg); err != nil {
		c.invalidate()
		c.log.Error("Error publishing to Kafka", zap.String("event_id", e.EventID()), zap.Error(err))
		return err
	}

	c.log.Debug("Event published successfully",
		zap.String("event_id", e.EventID()),
		zap.String("event_kind", e.Kind()),
	)
	return nil
}

func (c *KafkaChannel) getWriter() *kafka.Writer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writer == nil {
		c.writer = &kafka.Writer{
			Addr:     kafka.TCP(c.brokers...),
			Topic:    c.topic,
			Balancer: &kafka.Hash{},
		}
	}
	return c.writer
}

func (c *KafkaChannel) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writer != nil {
		_ = c.writer.Close()
		c.writer = nil
	}
}

// Close libera el writer cacheado, si existe.
func (c *KafkaChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writer == nil {
		return nil
	}
	err := c.writer.Close()
	c.writer = nil
	return err
}

// Verificación estática
var _ relayer.PublishChannel = (*KafkaChannel)(nil)
