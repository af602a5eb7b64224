package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

// EventStoreSQLite implementa events.Store sobre la tabla domain_events.
type EventStoreSQLite struct {
	db    *sql.DB
	codec *sharedEvents.Codec
}

func NewEventStoreSQLite(db *sql.DB, codec *sharedEvents.Codec) *EventStoreSQLite {
	return &EventStoreSQLite{db: db, codec: codec}
}

// InitSQLite abre la base de datos y crea el esquema de eventos si no existe.
func InitSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
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
			date_occurred DATETIME NOT NULL,
			event_type    TEXT NOT NULL,
			body          TEXT NOT NULL,
			is_sent       BOOLEAN NOT NULL DEFAULT 0
		)`)
	if err != nil {
		return fmt.Errorf("failed to create domain_events table: %w", err)
	}
	return nil
}

// Append inserta el evento como no-enviado. Si el contexto lleva una
// transacción abierta, el insert se une a ella: el evento solo persiste
// si la mutación de negocio hace commit.
func (s *EventStoreSQLite) Append(ctx context.Context, e sharedEvents.DomainEvent) error {
	body, err := sharedEvents.Body(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event body: %w", err)
	}

	const query = `INSERT INTO domain_events (event_id, date_occurred, event_type, body, is_sent)
	               VALUES (?, ?, ?, ?, 0)`
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

// NotSent devuelve los eventos pendientes más antiguos, en orden estable
// por fecha de ocurrencia.
func (s *EventStoreSQLite) NotSent(ctx context.Context, limit int) ([]sharedEvents.DomainEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, date_occurred, event_type, body
         FROM domain_events
         WHERE is_sent = 0
         ORDER BY date_occurred, event_id
         LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sharedEvents.DomainEvent
	for rows.Next() {
		var row eventRow
		if err := rows.Scan(&row.EventID, &row.DateOccurred, &row.EventType, &row.Body); err != nil {
			return nil, err
		}

		e, err := s.codec.Decode(row.EventType, row.EventID, row.DateOccurred, []byte(row.Body))
		if err != nil {
			return nil, fmt.Errorf("invalid event in domain_events row %s: %w", row.EventID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// AckSend marca el evento como enviado. Hacer ack de un evento ya
// marcado (o purgado) es un no-op.
func (s *EventStoreSQLite) AckSend(ctx context.Context, e sharedEvents.DomainEvent) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE domain_events SET is_sent = 1 WHERE event_id = ?`, e.EventID())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type eventRow struct {
	EventID      string
	DateOccurred time.Time
	EventType    string
	Body         string
}

// Verificación en tiempo de compilación.
var _ sharedEvents.Store = (*EventStoreSQLite)(nil)
