package events

import "context"

// Handler procesa un evento de dominio dentro del proceso.
type Handler func(ctx context.Context, e DomainEvent) error

// HandlerRegistry mapea kind de evento → conjunto de handlers con nombre.
// El nombre da semántica de conjunto (re-registrar el mismo handler es
// idempotente) y sirve para atribuir fallos en los logs.
//
// Se construye entero durante el arranque, antes de levantar los servers;
// en régimen estacionario es de solo lectura y no necesita locking.
type HandlerRegistry struct {
	handlers map[string]map[string]Handler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]map[string]Handler)}
}

// Register añade el handler al conjunto del kind. Registrar dos veces el
// mismo nombre para el mismo kind no duplica la invocación.
func (r *HandlerRegistry) Register(kind, name string, h Handler) {
	set, ok := r.handlers[kind]
	if !ok {
		set = make(map[string]Handler)
		r.handlers[kind] = set
	}
	set[name] = h
}

// On registra y devuelve el handler sin tocar, para poder encadenar
// la declaración con su definición.
func (r *HandlerRegistry) On(kind, name string, h Handler) Handler {
	r.Register(kind, name, h)
	return h
}

// Extend une todos los conjuntos de otro registro en este.
// Permite componer los registros que aporta cada módulo.
func (r *HandlerRegistry) Extend(other *HandlerRegistry) {
	for kind, set := range other.handlers {
		for name, h := range set {
			r.Register(kind, name, h)
		}
	}
}

// Handlers devuelve el conjunto (posiblemente vacío) para el kind.
// Un kind desconocido no es un error.
func (r *HandlerRegistry) Handlers(kind string) map[string]Handler {
	set := r.handlers[kind]
	out := make(map[string]Handler, len(set))
	for name, h := range set {
		out[name] = h
	}
	return out
}
