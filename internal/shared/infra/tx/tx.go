package tx

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// Manager delimita una unidad de trabajo. Al salir con éxito dispara el
// dispatch de eventos de dominio exactamente una vez.
type Manager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// With cuelga la transacción SQL del contexto para que los repositorios
// y el event store se sumen a ella.
func With(ctx context.Context, t *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, t)
}

// From devuelve la transacción en curso, o nil si no hay ninguna.
func From(ctx context.Context) *sql.Tx {
	t, _ := ctx.Value(txKey{}).(*sql.Tx)
	return t
}

// SQLManager implementa Manager sobre database/sql.
//
// Ciclo: abre la transacción y un buffer de eventos nuevo, ejecuta fn con
// ambos en el contexto, commitea, y solo entonces drena el buffer con el
// dispatcher (los handlers locales ven el estado ya commiteado). Después
// despierta al publish server para que el outbox salga sin esperar poll.
//
// Un error de fn (incluido un Append del store que falle) hace rollback:
// ni evento fantasma ni evento perdido. Un handler que falla en el
// dispatch propaga el error al llamante; ver DESIGN.md.
type SQLManager struct {
	db         *sql.DB
	dispatcher *sharedEvents.Dispatcher
	wake       func()
	log        *zap.Logger
}

func NewSQLManager(db *sql.DB, dispatcher *sharedEvents.Dispatcher, wake func(), log *zap.Logger) *SQLManager {
	return &SQLManager{db: db, dispatcher: dispatcher, wake: wake, log: log}
}

func (m *SQLManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	buf := sharedEvents.NewBuffer()
	ctx = sharedEvents.WithBuffer(ctx, buf)

	t, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(With(ctx, t)); err != nil {
		if rbErr := t.Rollback(); rbErr != nil {
			m.log.Warn("⚠️ Rollback falló", zap.Error(rbErr))
		}
		return err
	}

	if err := t.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	if m.wake != nil {
		defer m.wake()
	}
	return m.dispatcher.Dispatch(ctx, buf)
}

// Verificación estática
var _ Manager = (*SQLManager)(nil)
