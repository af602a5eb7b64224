package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// EventStoreMongoDB implementa events.Store sobre la colección domain_events.
//
// A diferencia de los stores SQL, aquí el append no participa de la
// transacción del contexto (requeriría sesiones de Mongo); el evento se
// inserta de inmediato. Sigue siendo at-least-once de cara al publisher.
type EventStoreMongoDB struct {
	eventsColl *mongo.Collection
	codec      *sharedEvents.Codec
}

func NewEventStoreMongoDB(client *mongo.Client, dbName string, codec *sharedEvents.Codec) *EventStoreMongoDB {
	eventsColl := client.Database(dbName).Collection("domain_events")
	return &EventStoreMongoDB{eventsColl: eventsColl, codec: codec}
}

// mongoDomainEvent es un helper para mapear los documentos de la base de datos.
type mongoDomainEvent struct {
	EventID      string    `bson:"_id"`
	DateOccurred time.Time `bson:"dateOccurred"`
	EventType    string    `bson:"eventType"`
	Body         []byte    `bson:"body"`
	IsSent       bool      `bson:"isSent"`
}

// Append inserta el evento como no-enviado.
func (s *EventStoreMongoDB) Append(ctx context.Context, e sharedEvents.DomainEvent) error {
	body, err := sharedEvents.Body(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event body: %w", err)
	}

	doc := mongoDomainEvent{
		EventID:      e.EventID(),
		DateOccurred: e.OccurredAt(),
		EventType:    e.Kind(),
		Body:         body,
		IsSent:       false,
	}
	if _, err := s.eventsColl.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert domain event: %w", err)
	}
	return nil
}

// NotSent devuelve los eventos pendientes más antiguos en orden estable.
func (s *EventStoreMongoDB) NotSent(ctx context.Context, limit int) ([]sharedEvents.DomainEvent, error) {
	filter := bson.M{"isSent": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "dateOccurred", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.eventsColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []sharedEvents.DomainEvent
	for cursor.Next(ctx) {
		var doc mongoDomainEvent
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		e, err := s.codec.Decode(doc.EventType, doc.EventID, doc.DateOccurred, doc.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid event in domain_events doc %s: %w", doc.EventID, err)
		}
		events = append(events, e)
	}
	return events, cursor.Err()
}

// AckSend marca el evento como enviado; un documento ya marcado (o
// purgado) deja el ack en no-op.
func (s *EventStoreMongoDB) AckSend(ctx context.Context, e sharedEvents.DomainEvent) error {
	filter := bson.M{"_id": e.EventID()}
	update := bson.M{"$set": bson.M{"isSent": true}}

	if _, err := s.eventsColl.UpdateOne(ctx, filter, update); err != nil {
		return err
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ sharedEvents.Store = (*EventStoreMongoDB)(nil)
