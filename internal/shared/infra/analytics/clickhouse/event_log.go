package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/relayer"
)

// EventLog es un PublishChannel que vuelca cada evento de dominio en una
// tabla de ClickHouse, como fuente analítica del flujo editorial.
type EventLog struct {
	db *sql.DB
}

// NewEventLog es el constructor.
func NewEventLog(addr string, dbName string) (*EventLog, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			// ... tus credenciales si son necesarias
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &EventLog{db: conn}, nil
}

// Publish inserta el evento en events_log. Un fallo aquí deja el evento
// sin ack en el store, así que la inserción se reintentará; la tabla
// tolera duplicados por event_id (at-least-once).
func (l *EventLog) Publish(ctx context.Context, e sharedEvents.DomainEvent) error {
	body, err := sharedEvents.Encode(e)
	if err != nil {
		return err
	}

	_, err = l.db.ExecContext(ctx,
		"INSERT INTO events_log (event_id, event_type, date_occurred, body, logged_at) VALUES (?, ?, ?, ?, ?)",
		e.EventID(),
		e.Kind(),
		e.OccurredAt(),
		string(body),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log event %s: %w", e.EventID(), err)
	}
	return nil
}

// DailyEventCount es una fila de la agregación diaria por tipo de evento.
type DailyEventCount struct {
	Day   time.Time
	Kind  string
	Count uint64
}

// GetDailyCounts agrega los eventos por día y tipo dentro del rango.
func (l *EventLog) GetDailyCounts(ctx context.Context, start, end time.Time) ([]DailyEventCount, error) {
	query := `
		SELECT
			toStartOfDay(date_occurred) AS day,
			event_type,
			count() AS total
		FROM events_log
		WHERE date_occurred BETWEEN ? AND ?
		GROUP BY day, event_type
		ORDER BY day, event_type
	`
	rows, err := l.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []DailyEventCount
	for rows.Next() {
		var c DailyEventCount
		if err := rows.Scan(&c.Day, &c.Kind, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// InitSchema crea la tabla en ClickHouse si no existe.
func (l *EventLog) InitSchema() error {
	// Se particiona por mes y se ordena por los campos comunes de consulta.
	query := `
		CREATE TABLE IF NOT EXISTS events_log (
			event_id      String,
			event_type    String,
			date_occurred DateTime64(3),
			body          String,
			logged_at     DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(date_occurred)
		ORDER BY (event_type, date_occurred);
	`
	_, err := l.db.Exec(query)
	return err
}

// Verificación estática de la interfaz.
var _ relayer.PublishChannel = (*EventLog)(nil)
