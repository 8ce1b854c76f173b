package repository

import (
	"context"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
)

// RegistroRepository define el puerto del almacén de registros: una planilla ordenada
// con esquema fijo (entity.Columnas). Sólo lectura completa y reemplazo completo.
type RegistroRepository interface {
	// ReadAll devuelve todos los registros en el orden del almacén. Filas totalmente vacías se omiten.
	ReadAll(ctx context.Context) ([]entity.Registro, error)
	// ReplaceAll sobrescribe el almacén completo con la lista dada, en ese orden.
	ReplaceAll(ctx context.Context, registros []entity.Registro) error
}

// RegistroAppender capacidad opcional: agregar un registro de forma atómica.
// Los almacenes que la implementan evitan la carrera de leer-concatenar-reemplazar.
type RegistroAppender interface {
	Append(ctx context.Context, registro entity.Registro) error
}
