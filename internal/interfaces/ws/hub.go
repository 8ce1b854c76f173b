// Package ws difunde eventos del formulario a los dashboards conectados por websocket.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/application/ports"
	"github.com/gar-aguas/control-rf29/pkg/logger"
)

var _ ports.Notificador = (*Hub)(nil)

// ErrHubSaturado la cola de difusión está llena; el evento se descarta.
var ErrHubSaturado = errors.New("ws: cola de difusión llena")

// Cliente conexión websocket (satisfecha por *websocket.Conn).
type Cliente interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub mantiene los clientes conectados y les reenvía cada mensaje.
type Hub struct {
	clients    map[Cliente]bool
	register   chan Cliente
	unregister chan Cliente
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub. Debe arrancarse con Run.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Cliente]bool),
		register:   make(chan Cliente),
		unregister: make(chan Cliente),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run procesa altas, bajas y difusiones hasta que ctx se cancela; al salir cierra todos los clientes.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mutex.Lock()
		for conn := range h.clients {
			_ = conn.Close()
			delete(h.clients, conn)
		}
		h.mutex.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clientes", total).Msg("ws: dashboard conectado")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register agrega un cliente. No bloquea si el hub ya se detuvo.
func (h *Hub) Register(conn Cliente) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister quita y cierra un cliente.
func (h *Hub) Unregister(conn Cliente) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Clientes cantidad de dashboards conectados.
func (h *Hub) Clientes() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Notificar serializa el evento y lo encola para difusión sin bloquear al llamador.
func (h *Hub) Notificar(_ context.Context, evento string, datos interface{}) error {
	msg, err := Mensaje(evento, datos)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- msg:
		return nil
	default:
		return ErrHubSaturado
	}
}

// Mensaje arma el JSON {evento, datos} que reciben los clientes.
func Mensaje(evento string, datos interface{}) ([]byte, error) {
	msg, err := json.Marshal(dto.EventoDTO{Evento: evento, Datos: datos})
	if err != nil {
		return nil, fmt.Errorf("ws: serializar evento: %w", err)
	}
	return msg, nil
}
