package ports

import "context"

// Eventos enviados a los dashboards.
const (
	EventoRegistroCreado = "registro_creado" // tras persistir un registro
	EventoResumen        = "resumen"         // al conectar un dashboard
)

// Notificador define el puerto de salida hacia los dashboards conectados en vivo.
// Las implementaciones no deben bloquear al formulario: si no hay clientes, se descarta.
type Notificador interface {
	Notificar(ctx context.Context, evento string, datos interface{}) error
}
