package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/csvfile"
)

func TestStore_ArchivoInexistenteEsVacio(t *testing.T) {
	s, err := csvfile.New(filepath.Join(t.TempDir(), "no", "existe.csv"), "utf-8")
	require.NoError(t, err)

	regs, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestStore_ReplaceYRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos", "registros.csv")
	s, err := csvfile.New(path, "windows-1252")
	require.NoError(t, err)
	ctx := context.Background()

	orig := []entity.Registro{
		{FechaHora: "2026-01-01 08:00:00", Movimiento: "Ingreso", Nombre: "José", RUTSAP: "1",
			Empresa: "ACME", CuerpoLiquido: "1. Reservorios", Autorizador: "5. Ana Rojas", Motivo: "Revisión"},
		{FechaHora: "2026-01-01 09:00:00", Movimiento: "Salida", Nombre: "José", RUTSAP: "1",
			Empresa: "ACME", CuerpoLiquido: "1. Reservorios", Autorizador: entity.NoAplicaSalida, Motivo: entity.NoAplicaSalida},
	}
	require.NoError(t, s.ReplaceAll(ctx, orig))

	regs, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, orig, regs)

	// Sin temporales olvidados en el directorio.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_LeePlanillaExternaConColumnasReordenadas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "externa.csv")
	contenido := "Nombre,RUT_SAP,Movimiento,Fecha_Hora\nAna,7,Ingreso,2026-01-02 10:00:00\n,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(contenido), 0o644))

	s, err := csvfile.New(path, "")
	require.NoError(t, err)
	regs, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "7", regs[0].RUTSAP)
	assert.Equal(t, "Ingreso", regs[0].Movimiento)
}

func TestNew_Validaciones(t *testing.T) {
	_, err := csvfile.New("", "utf-8")
	assert.Error(t, err)
	_, err = csvfile.New("x.csv", "utf-16")
	assert.Error(t, err)
}

func TestStore_ContextoCancelado(t *testing.T) {
	s, err := csvfile.New(filepath.Join(t.TempDir(), "r.csv"), "utf-8")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.ReplaceAll(ctx, nil), context.Canceled)
}
