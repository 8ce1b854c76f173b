// Package memory implementa los almacenes en proceso (desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/repository"
)

var (
	_ repository.RegistroRepository = (*RegistroStore)(nil)
	_ repository.RegistroAppender   = (*RegistroStore)(nil)
)

// RegistroStore almacén de registros en memoria. Los datos se pierden al reiniciar.
type RegistroStore struct {
	mu        sync.RWMutex
	registros []entity.Registro
}

// NewRegistroStore construye el almacén con registros iniciales opcionales.
func NewRegistroStore(iniciales ...entity.Registro) *RegistroStore {
	return &RegistroStore{registros: append([]entity.Registro{}, iniciales...)}
}

// ReadAll devuelve una copia de los registros.
func (s *RegistroStore) ReadAll(_ context.Context) ([]entity.Registro, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Registro{}, s.registros...), nil
}

// ReplaceAll reemplaza todos los registros.
func (s *RegistroStore) ReplaceAll(_ context.Context, registros []entity.Registro) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registros = append([]entity.Registro{}, registros...)
	return nil
}

// Append agrega un registro al final.
func (s *RegistroStore) Append(_ context.Context, r entity.Registro) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registros = append(s.registros, r)
	return nil
}
