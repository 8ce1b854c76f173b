package ports

import (
	"context"

	"github.com/gar-aguas/control-rf29/internal/application/dto"
)

// ReporteGenerator genera el PDF de ocupación a partir del resumen del dashboard.
type ReporteGenerator interface {
	GenerarOcupacion(ctx context.Context, resumen *dto.DashboardDTO) ([]byte, error)
}
