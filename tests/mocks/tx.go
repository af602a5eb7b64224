package mocks

import (
	"context"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// FakeTxManager simula el Manager sin base de datos: cada unidad de
// trabajo recibe un buffer nuevo y, si hay dispatcher, los eventos se
// despachan tras el "commit".
type FakeTxManager struct {
	Dispatcher *sharedEvents.Dispatcher
	Wake       func()

	// Buffers guarda los buffers de cada transacción, para inspección.
	Buffers []*sharedEvents.Buffer
}

func (m *FakeTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	buf := sharedEvents.NewBuffer()
	m.Buffers = append(m.Buffers, buf)

	if err := fn(sharedEvents.WithBuffer(ctx, buf)); err != nil {
		return err
	}

	if m.Wake != nil {
		defer m.Wake()
	}
	if m.Dispatcher != nil {
		return m.Dispatcher.Dispatch(ctx, buf)
	}
	// sin dispatcher el buffer queda sin sellar, inspeccionable por el test
	return nil
}
