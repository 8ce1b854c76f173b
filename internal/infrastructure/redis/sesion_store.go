package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
)

var _ repository.SesionRepository = (*SesionStore)(nil)

// Prefijo de las claves de sesión.
const sesionKeyPrefix = "rf29:sesion:"

// SesionStore sesiones del formulario como JSON con expiración por inactividad.
type SesionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSesionStore construye el store. ttl 0 significa sin expiración.
func NewSesionStore(client *redis.Client, ttl time.Duration) *SesionStore {
	return &SesionStore{client: client, ttl: ttl}
}

// Get devuelve false si la clave no existe o expiró.
func (s *SesionStore) Get(ctx context.Context, id string) (wizard.Estado, bool, error) {
	raw, err := s.client.Get(ctx, sesionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return wizard.Estado{}, false, nil
	}
	if err != nil {
		return wizard.Estado{}, false, fmt.Errorf("redis get sesión: %w", err)
	}
	var estado wizard.Estado
	if err := json.Unmarshal(raw, &estado); err != nil {
		// Contenido ilegible: se trata como sesión nueva.
		return wizard.Estado{}, false, nil
	}
	return estado, true, nil
}

// Save guarda el estado y renueva la expiración.
func (s *SesionStore) Save(ctx context.Context, id string, estado wizard.Estado) error {
	raw, err := json.Marshal(estado)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, sesionKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set sesión: %w", err)
	}
	return nil
}

// Delete elimina la sesión.
func (s *SesionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sesionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del sesión: %w", err)
	}
	return nil
}
