//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/postgres"
	"github.com/gar-aguas/control-rf29/pkg/config"
)

type RegistroRepoSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *postgres.RegistroRepo
}

func TestRegistroRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RegistroRepoSuite))
}

func (s *RegistroRepoSuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("control_rf29"),
		tcpostgres.WithUsername("rf29"),
		tcpostgres.WithPassword("rf29"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	s.Require().NoError(err)
	s.Require().NoError(postgres.Migrate(ctx, s.pool))
	s.Require().NoError(postgres.Migrate(ctx, s.pool), "las migraciones deben ser idempotentes")
	s.repo = postgres.NewRegistroRepository(s.pool)
}

func (s *RegistroRepoSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	s.NoError(testcontainers.TerminateContainer(s.container))
}

func (s *RegistroRepoSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE registros_rf29 RESTART IDENTITY`)
	s.Require().NoError(err)
}

func registro(rut, mov string) entity.Registro {
	return entity.Registro{
		FechaHora: "2026-06-01 08:00:00", Movimiento: mov, Nombre: "Nombre " + rut, RUTSAP: rut,
		Empresa: "ACME", CuerpoLiquido: "2. Pond ERASO", Autorizador: "6. Percy Parra", Motivo: "Muestreo",
	}
}

func (s *RegistroRepoSuite) TestReplaceAllYReadAllConservanOrden() {
	ctx := context.Background()
	orig := []entity.Registro{registro("3", "Ingreso"), registro("1", "Ingreso"), registro("2", "Salida")}
	s.Require().NoError(s.repo.ReplaceAll(ctx, orig))

	got, err := s.repo.ReadAll(ctx)
	s.Require().NoError(err)
	s.Equal(orig, got)

	s.Require().NoError(s.repo.ReplaceAll(ctx, orig[:1]))
	got, err = s.repo.ReadAll(ctx)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *RegistroRepoSuite) TestAppendConcurrenteNoPierdeRegistros() {
	ctx := context.Background()
	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.repo.Append(ctx, registro("c", "Ingreso")))
		}()
	}
	wg.Wait()

	got, err := s.repo.ReadAll(ctx)
	s.Require().NoError(err)
	s.Len(got, n)
}

func (s *RegistroRepoSuite) TestTablaVacia() {
	got, err := s.repo.ReadAll(context.Background())
	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}
