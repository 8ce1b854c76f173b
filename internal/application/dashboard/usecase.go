// Package dashboard contiene el caso de uso del Dashboard en Vivo: ocupación actual
// e historial reciente a partir del almacén de registros.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/application/ports"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/ocupacion"
	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/pkg/logger"
	"github.com/gar-aguas/control-rf29/pkg/metrics"
)

// Mensajes informativos del dashboard.
const (
	MsgSinRespuestas = "Aún no hay respuestas en la base de datos."
	MsgDespejada     = "El área se encuentra totalmente despejada."
)

// HistorialPorDefecto filas del historial si no se configura otra cantidad.
const HistorialPorDefecto = 15

// UseCase arma el resumen de ocupación. Nunca falla por el almacén: una lectura
// fallida se registra y se trata como almacén vacío.
type UseCase struct {
	repo      repository.RegistroRepository
	reporte   ports.ReporteGenerator
	log       *logger.Logger
	metrics   *metrics.Metrics
	historial int
	loc       *time.Location
	now       func() time.Time
}

// NewUseCase construye el caso de uso. reporte y m pueden ser nil.
func NewUseCase(
	repo repository.RegistroRepository,
	reporte ports.ReporteGenerator,
	log *logger.Logger,
	m *metrics.Metrics,
	historial int,
	loc *time.Location,
) *UseCase {
	if historial <= 0 {
		historial = HistorialPorDefecto
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo: repo, reporte: reporte, log: log, metrics: m,
		historial: historial, loc: loc, now: time.Now,
	}
}

// Resumen lee todos los registros y calcula quién está adentro.
func (uc *UseCase) Resumen(ctx context.Context) *dto.DashboardDTO {
	registros, err := uc.repo.ReadAll(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("dashboard: lectura del almacén fallida, se muestra vacío")
		uc.metrics.IncErrorAlmacen("lectura")
		registros = nil
	}
	return uc.construir(registros)
}

func (uc *UseCase) construir(registros []entity.Registro) *dto.DashboardDTO {
	adentro := ocupacion.Adentro(registros)
	uc.metrics.SetAdentro(len(adentro))

	out := &dto.DashboardDTO{
		TotalAdentro:     len(adentro),
		Adentro:          make([]dto.PersonaAdentroDTO, 0, len(adentro)),
		PorCuerpoLiquido: []dto.CuerpoLiquidoDTO{},
		Historial:        ocupacion.Recientes(registros, uc.historial),
		GeneradoEn:       entity.FormatearFechaHora(uc.now().In(uc.loc)),
	}
	for _, r := range adentro {
		out.Adentro = append(out.Adentro, dto.PersonaAdentroDTO{
			FechaHora:     r.FechaHora,
			Nombre:        r.Nombre,
			Empresa:       r.Empresa,
			CuerpoLiquido: r.CuerpoLiquido,
			Autorizador:   r.Autorizador,
		})
	}
	for _, g := range ocupacion.PorCuerpoLiquido(adentro) {
		out.PorCuerpoLiquido = append(out.PorCuerpoLiquido, dto.CuerpoLiquidoDTO{
			CuerpoLiquido: g.CuerpoLiquido,
			Personas:      g.Personas,
			Porcentaje:    g.Porcentaje,
		})
	}

	switch {
	case len(registros) == 0:
		out.Mensaje = MsgSinRespuestas
	case len(adentro) == 0:
		out.Mensaje = MsgDespejada
	}
	return out
}

// Reporte genera el PDF de ocupación actual.
func (uc *UseCase) Reporte(ctx context.Context) ([]byte, error) {
	if uc.reporte == nil {
		return nil, fmt.Errorf("reporte: generador no configurado")
	}
	pdf, err := uc.reporte.GenerarOcupacion(ctx, uc.Resumen(ctx))
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}
	return pdf, nil
}
