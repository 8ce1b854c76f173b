package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/repository"
)

var (
	_ repository.RegistroRepository = (*RegistroRepo)(nil)
	_ repository.RegistroAppender   = (*RegistroRepo)(nil)
)

const tablaRegistros = "registros_rf29"

var columnasRegistros = []string{
	"fecha_hora", "movimiento", "nombre", "rut_sap",
	"empresa", "cuerpo_liquido", "autorizador", "motivo",
}

// RegistroRepo implementación del almacén de registros sobre PostgreSQL.
// El orden del almacén es el de inserción (columna id).
type RegistroRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewRegistroRepository construye el adaptador de persistencia para registros.
func NewRegistroRepository(pool *pgxpool.Pool) *RegistroRepo {
	return &RegistroRepo{pool: pool, tx: NewTxRunner(pool)}
}

// ReadAll devuelve todos los registros en orden de inserción.
func (r *RegistroRepo) ReadAll(ctx context.Context) ([]entity.Registro, error) {
	query := `
		SELECT fecha_hora, movimiento, nombre, rut_sap, empresa, cuerpo_liquido, autorizador, motivo
		FROM registros_rf29 ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list registros: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Registro, 0)
	for rows.Next() {
		var reg entity.Registro
		if err := rows.Scan(
			&reg.FechaHora, &reg.Movimiento, &reg.Nombre, &reg.RUTSAP,
			&reg.Empresa, &reg.CuerpoLiquido, &reg.Autorizador, &reg.Motivo,
		); err != nil {
			return nil, fmt.Errorf("scan registro: %w", err)
		}
		if reg.Vacio() {
			continue
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// ReplaceAll borra la tabla y copia la lista completa dentro de una transacción.
func (r *RegistroRepo) ReplaceAll(ctx context.Context, registros []entity.Registro) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM registros_rf29`); err != nil {
			return fmt.Errorf("delete registros: %w", err)
		}
		if len(registros) == 0 {
			return nil
		}
		filas := make([][]any, 0, len(registros))
		for _, reg := range registros {
			filas = append(filas, []any{
				reg.FechaHora, reg.Movimiento, reg.Nombre, reg.RUTSAP,
				reg.Empresa, reg.CuerpoLiquido, reg.Autorizador, reg.Motivo,
			})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{tablaRegistros}, columnasRegistros, pgx.CopyFromRows(filas)); err != nil {
			return fmt.Errorf("copy registros: %w", err)
		}
		return nil
	})
}

// Append inserta un registro al final.
func (r *RegistroRepo) Append(ctx context.Context, reg entity.Registro) error {
	query := `
		INSERT INTO registros_rf29 (fecha_hora, movimiento, nombre, rut_sap, empresa, cuerpo_liquido, autorizador, motivo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		reg.FechaHora, reg.Movimiento, reg.Nombre, reg.RUTSAP,
		reg.Empresa, reg.CuerpoLiquido, reg.Autorizador, reg.Motivo,
	)
	if err != nil {
		return fmt.Errorf("insert registro: %w", err)
	}
	return nil
}
