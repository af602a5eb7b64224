package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// EventStorePostgres implementa events.Store sobre la tabla domain_events.
type EventStorePostgres struct {
	db    *sql.DB
	codec *sharedEvents.Codec
}

func NewEventStorePostgres(db *sql.DB, codec *sharedEvents.Codec) *EventStorePostgres {
	return &EventStorePostgres{db: db, codec: codec}
}

// InitPostgres abre la conexión y crea el esquema de eventos si no existe.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping postgres: %w", err)
	}
	if err := InitEventSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitEventSchema crea la tabla domain_events.
func InitEventSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS domain_events (
			event_id      TEXT PRIMARY KEY,
			date_occurred TIMESTAMPTZ NOT NULL,
			event_type    TEXT NOT NULL,
			body          JSONB NOT NULL,
			is_sent       BOOLEAN NOT NULL DEFAULT FALSE
		)`)
	if err != nil {
		return fmt.Errorf("failed to create domain_events table: %w", err)
	}
	return nil
}

// Append inserta el evento como no-enviado, uniéndose a la transacción
// del contexto si la hay.
func (s *EventStorePostgres) Append(ctx context.Context, e sharedEvents.DomainEvent) error {
	body, err := sharedEvents.Body(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event body: %w", err)
	}

	const query = `INSERT INTO domain_events (event_id, date_occurred, event_type, body, is_sent)
	               VALUES ($1, $2, $3, $4, FALSE)`
	args := []any{e.EventID(), e.OccurredAt(), e.Kind(), string(body)}

	if t := tx.From(ctx); t != nil {
		_, err = t.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to insert domain event: %w", err)
	}
	return nil
}

// NotSent devuelve los eventos pendientes más antiguos en orden estable.
func (s *EventStorePostgres) NotSent(ctx context.Context, limit int) ([]sharedEvents.DomainEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, date_occurred, event_type, body
         FROM domain_events
         WHERE is_sent = FALSE
         ORDER BY date_occurred, event_id
         LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sharedEvents.DomainEvent
	for rows.Next() {
		var (
			eventID      string
			dateOccurred time.Time
			eventType    string
			body         []byte
		)
		if err := rows.Scan(&eventID, &dateOccurred, &eventType, &body); err != nil {
			return nil, err
		}

		e, err := s.codec.Decode(eventType, eventID, dateOccurred, body)
		if err != nil {
			return nil, fmt.Errorf("invalid event in domain_events row %s: %w", eventID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// AckSend marca el evento como enviado; repetir el ack es un no-op.
func (s *EventStorePostgres) AckSend(ctx context.Context, e sharedEvents.DomainEvent) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE domain_events SET is_sent = TRUE WHERE event_id = $1`, e.EventID())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ sharedEvents.Store = (*EventStorePostgres)(nil)
