package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
)

type MemoryStoreSuite struct {
	suite.Suite
	registros *RegistroStore
	sesiones  *SesionStore
	ahora     time.Time
	ctx       context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ahora = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.registros = NewRegistroStore()
	s.sesiones = NewSesionStore(10 * time.Minute)
	s.sesiones.now = func() time.Time { return s.ahora }
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestRegistros() {
	s.Run("vacío devuelve lista vacía", func() {
		list, err := s.registros.ReadAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(list)
	})

	s.Run("append conserva el orden", func() {
		s.Require().NoError(s.registros.Append(s.ctx, entity.Registro{RUTSAP: "1"}))
		s.Require().NoError(s.registros.Append(s.ctx, entity.Registro{RUTSAP: "2"}))
		list, err := s.registros.ReadAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal("1", list[0].RUTSAP)
		s.Equal("2", list[1].RUTSAP)
	})

	s.Run("replace sobrescribe y no comparte el slice", func() {
		nuevos := []entity.Registro{{RUTSAP: "9"}}
		s.Require().NoError(s.registros.ReplaceAll(s.ctx, nuevos))
		nuevos[0].RUTSAP = "x"
		list, _ := s.registros.ReadAll(s.ctx)
		s.Require().Len(list, 1)
		s.Equal("9", list[0].RUTSAP)
	})
}

func (s *MemoryStoreSuite) TestAppendConcurrenteNoPierdeRegistros() {
	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.registros.Append(s.ctx, entity.Registro{RUTSAP: "c"})
		}()
	}
	wg.Wait()
	list, _ := s.registros.ReadAll(s.ctx)
	s.Len(list, n)
}

func (s *MemoryStoreSuite) TestSesiones() {
	estado := wizard.Estado{Paso: wizard.PasoDatos, Movimiento: "Salida"}

	s.Run("guarda y recupera", func() {
		s.Require().NoError(s.sesiones.Save(s.ctx, "a", estado))
		got, ok, err := s.sesiones.Get(s.ctx, "a")
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(estado, got)
	})

	s.Run("desconocida no existe", func() {
		_, ok, err := s.sesiones.Get(s.ctx, "zzz")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("expira por inactividad", func() {
		s.ahora = s.ahora.Add(11 * time.Minute)
		_, ok, _ := s.sesiones.Get(s.ctx, "a")
		s.False(ok)
	})

	s.Run("delete", func() {
		s.Require().NoError(s.sesiones.Save(s.ctx, "b", estado))
		s.Require().NoError(s.sesiones.Delete(s.ctx, "b"))
		_, ok, _ := s.sesiones.Get(s.ctx, "b")
		s.False(ok)
	})
}

func (s *MemoryStoreSuite) TestSaveConTTLPurgaVencidas() {
	s.Require().NoError(s.sesiones.Save(s.ctx, "vieja", wizard.Inicial()))
	s.ahora = s.ahora.Add(time.Hour)
	s.Require().NoError(s.sesiones.Save(s.ctx, "nueva", wizard.Inicial()))
	s.Equal(1, s.sesiones.Len())
}
