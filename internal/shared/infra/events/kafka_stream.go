package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/relayer"
)

// KafkaStream adapta un kafka.Reader al EventStream que consume el
// listener: lee mensajes del topic de eventos y los decodifica con el
// codec. Un mensaje que no se puede decodificar se loguea y se salta;
// no frena el consumo.
type KafkaStream struct {
	reader *kafka.Reader
	codec  *sharedEvents.Codec
	log    *zap.Logger
}

func NewKafkaStream(reader *kafka.Reader, codec *sharedEvents.Codec, log *zap.Logger) *KafkaStream {
	return &KafkaStream{reader: reader, codec: codec, log: log}
}

func (s *KafkaStream) Next(ctx context.Context) (sharedEvents.DomainEvent, error) {
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}

		e, err := sharedEvents.DecodeWire(s.codec, msg.Value)
		if err != nil {
			s.log.Warn("Mensaje de evento inválido, se descarta",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
			continue
		}
		return e, nil
	}
}

// Close cierra el reader subyacente.
func (s *KafkaStream) Close() error {
	return s.reader.Close()
}

// Verificación estática
var _ relayer.EventStream = (*KafkaStream)(nil)
