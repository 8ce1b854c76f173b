package repository

import (
	"context"

	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
)

// SesionRepository guarda el estado del formulario por ID de sesión.
type SesionRepository interface {
	// Get devuelve el estado y false si la sesión no existe o expiró.
	Get(ctx context.Context, id string) (wizard.Estado, bool, error)
	Save(ctx context.Context, id string, estado wizard.Estado) error
	Delete(ctx context.Context, id string) error
}
