package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/csvfile"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/memory"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/postgres"
	infraredis "github.com/gar-aguas/control-rf29/internal/infrastructure/redis"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/s3store"
	"github.com/gar-aguas/control-rf29/pkg/config"
	"github.com/gar-aguas/control-rf29/pkg/logger"
)

// abrirAlmacen construye el almacén de registros según STORE_DRIVER.
// La función devuelta libera las conexiones abiertas.
func abrirAlmacen(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.RegistroRepository, func(), error) {
	nada := func() {}
	switch cfg.Store.Driver {
	case config.StoreDriverMemoria:
		log.Warn().Msg("almacén en memoria: los registros se pierden al reiniciar")
		return memory.NewRegistroStore(), nada, nil

	case config.StoreDriverS3:
		client, err := s3store.NewClient(ctx, cfg.Store.S3)
		if err != nil {
			return nil, nada, err
		}
		store, err := s3store.New(client, cfg.Store.S3.Bucket, cfg.Store.S3.Key, cfg.Store.S3.Charset)
		if err != nil {
			return nil, nada, err
		}
		return store, nada, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Store.DB)
		if err != nil {
			return nil, nada, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nada, err
		}
		return postgres.NewRegistroRepository(pool), pool.Close, nil

	default:
		store, err := csvfile.New(cfg.Store.CSV.Path, cfg.Store.CSV.Charset)
		if err != nil {
			return nil, nada, err
		}
		log.Info().Str("archivo", cfg.Store.CSV.Path).Msg("almacén CSV local")
		return store, nada, nil
	}
}

// abrirSesiones construye el almacén de sesiones del formulario según SESSION_DRIVER.
func abrirSesiones(ctx context.Context, cfg *config.Config) (repository.SesionRepository, func(), error) {
	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	if cfg.Session.Driver == config.SessionDriverRedis {
		client, err := infraredis.NewClient(ctx, cfg.Session.Redis)
		if err != nil {
			return nil, func() {}, fmt.Errorf("conexión a Redis: %w", err)
		}
		return infraredis.NewSesionStore(client, ttl), func() { _ = client.Close() }, nil
	}
	return memory.NewSesionStore(ttl), func() {}, nil
}
