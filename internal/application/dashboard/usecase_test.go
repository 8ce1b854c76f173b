package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gar-aguas/control-rf29/internal/application/dashboard"
	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/memory"
	"github.com/gar-aguas/control-rf29/pkg/metrics"
)

type almacenCaido struct{}

func (almacenCaido) ReadAll(context.Context) ([]entity.Registro, error) {
	return nil, errors.New("conexión rechazada")
}

func (almacenCaido) ReplaceAll(context.Context, []entity.Registro) error {
	return errors.New("conexión rechazada")
}

type reporteFake struct {
	recibido *dto.DashboardDTO
}

func (r *reporteFake) GenerarOcupacion(_ context.Context, resumen *dto.DashboardDTO) ([]byte, error) {
	r.recibido = resumen
	return []byte("%PDF-fake"), nil
}

func registro(fecha, mov, rut, cuerpo string) entity.Registro {
	return entity.Registro{
		FechaHora: fecha, Movimiento: mov, Nombre: "Nombre " + rut, RUTSAP: rut,
		Empresa: "ACME", CuerpoLiquido: cuerpo, Autorizador: "1. Manuel Figueroa", Motivo: "m",
	}
}

func TestResumen_AlmacenVacio(t *testing.T) {
	uc := dashboard.NewUseCase(memory.NewRegistroStore(), nil, nil, nil, 15, nil)
	out := uc.Resumen(context.Background())

	assert.Equal(t, 0, out.TotalAdentro)
	assert.Empty(t, out.Adentro)
	assert.Empty(t, out.Historial)
	assert.Equal(t, dashboard.MsgSinRespuestas, out.Mensaje)
}

func TestResumen_LecturaFallidaSeDegradaAVacio(t *testing.T) {
	m := metrics.New()
	uc := dashboard.NewUseCase(almacenCaido{}, nil, nil, m, 15, nil)
	out := uc.Resumen(context.Background())

	require.NotNil(t, out)
	assert.Equal(t, 0, out.TotalAdentro)
	assert.Equal(t, dashboard.MsgSinRespuestas, out.Mensaje)
}

func TestResumen_AreaDespejada(t *testing.T) {
	store := memory.NewRegistroStore(
		registro("2026-02-01 08:00:00", "Ingreso", "A", "1. Reservorios"),
		registro("2026-02-01 12:00:00", "Salida", "A", "1. Reservorios"),
	)
	out := dashboard.NewUseCase(store, nil, nil, nil, 15, nil).Resumen(context.Background())

	assert.Equal(t, 0, out.TotalAdentro)
	assert.Equal(t, dashboard.MsgDespejada, out.Mensaje)
	assert.Len(t, out.Historial, 2)
}

func TestResumen_PersonasAdentroEHistorial(t *testing.T) {
	var regs []entity.Registro
	for i := 0; i < 18; i++ {
		regs = append(regs, registro("2026-02-01 07:00:00", "Salida", "viejo", "1. Reservorios"))
	}
	regs = append(regs,
		registro("2026-02-01 08:00:00", "Ingreso", "A", "1. Reservorios"),
		registro("2026-02-01 09:00:00", "Ingreso", "B", "2. Pond ERASO"),
	)
	out := dashboard.NewUseCase(memory.NewRegistroStore(regs...), nil, nil, nil, 15, nil).
		Resumen(context.Background())

	assert.Equal(t, 2, out.TotalAdentro)
	require.Len(t, out.Adentro, 2)
	assert.Equal(t, dto.PersonaAdentroDTO{
		FechaHora: "2026-02-01 08:00:00", Nombre: "Nombre A", Empresa: "ACME",
		CuerpoLiquido: "1. Reservorios", Autorizador: "1. Manuel Figueroa",
	}, out.Adentro[0])
	assert.Len(t, out.Historial, 15)
	assert.Equal(t, "B", out.Historial[14].RUTSAP, "historial en orden del almacén")
	assert.Empty(t, out.Mensaje)
	require.Len(t, out.PorCuerpoLiquido, 2)
	assert.Equal(t, "50.00", out.PorCuerpoLiquido[0].Porcentaje.StringFixed(2))
}

func TestReporte_UsaElResumenActual(t *testing.T) {
	gen := &reporteFake{}
	store := memory.NewRegistroStore(registro("2026-02-01 08:00:00", "Ingreso", "A", "1. Reservorios"))
	uc := dashboard.NewUseCase(store, gen, nil, nil, 15, nil)

	pdf, err := uc.Reporte(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, gen.recibido)
	assert.Equal(t, 1, gen.recibido.TotalAdentro)
}

func TestReporte_SinGenerador(t *testing.T) {
	uc := dashboard.NewUseCase(memory.NewRegistroStore(), nil, nil, nil, 15, nil)
	_, err := uc.Reporte(context.Background())
	assert.Error(t, err)
}
