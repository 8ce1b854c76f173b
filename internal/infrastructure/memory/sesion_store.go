package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
)

var _ repository.SesionRepository = (*SesionStore)(nil)

type sesion struct {
	estado   wizard.Estado
	expiraEn time.Time
}

// SesionStore sesiones del formulario en memoria con expiración por inactividad.
type SesionStore struct {
	mu       sync.Mutex
	sesiones map[string]sesion
	ttl      time.Duration
	now      func() time.Time
}

// NewSesionStore construye el almacén. ttl <= 0 desactiva la expiración.
func NewSesionStore(ttl time.Duration) *SesionStore {
	return &SesionStore{sesiones: make(map[string]sesion), ttl: ttl, now: time.Now}
}

// Get devuelve el estado de la sesión si existe y no expiró.
func (s *SesionStore) Get(_ context.Context, id string) (wizard.Estado, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ses, ok := s.sesiones[id]
	if !ok {
		return wizard.Estado{}, false, nil
	}
	if s.ttl > 0 && s.now().After(ses.expiraEn) {
		delete(s.sesiones, id)
		return wizard.Estado{}, false, nil
	}
	return ses.estado, true, nil
}

// Save guarda el estado y renueva la expiración. Aprovecha para purgar sesiones vencidas.
func (s *SesionStore) Save(_ context.Context, id string, estado wizard.Estado) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.ttl > 0 {
		for k, ses := range s.sesiones {
			if now.After(ses.expiraEn) {
				delete(s.sesiones, k)
			}
		}
	}
	// El ID puede venir de un buffer reutilizable; la clave del map debe ser propia.
	s.sesiones[strings.Clone(id)] = sesion{estado: estado, expiraEn: now.Add(s.ttl)}
	return nil
}

// Delete elimina la sesión.
func (s *SesionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sesiones, id)
	return nil
}

// Len cantidad de sesiones guardadas (incluye vencidas aún no purgadas).
func (s *SesionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sesiones)
}
