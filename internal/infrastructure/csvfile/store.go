// Package csvfile guarda la planilla de registros en un archivo CSV local.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/hoja"
)

var _ repository.RegistroRepository = (*Store)(nil)

// Store planilla en disco. Las escrituras van a un archivo temporal y luego se renombran,
// así un lector nunca ve un archivo a medio escribir. Sólo serializa dentro del proceso.
type Store struct {
	path    string
	charset string
	mu      sync.RWMutex
}

// New construye el store. El archivo se crea en la primera escritura.
func New(path, charset string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("csvfile: ruta vacía")
	}
	if err := hoja.ValidarCharset(charset); err != nil {
		return nil, err
	}
	return &Store{path: path, charset: charset}, nil
}

// ReadAll lee la planilla. Si el archivo no existe devuelve lista vacía.
func (s *Store) ReadAll(ctx context.Context) ([]entity.Registro, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.Registro{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvfile: abrir: %w", err)
	}
	defer f.Close()

	regs, err := hoja.Decodificar(f, s.charset)
	if err != nil {
		return nil, fmt.Errorf("csvfile: %w", err)
	}
	return regs, nil
}

// ReplaceAll reescribe la planilla completa.
func (s *Store) ReplaceAll(ctx context.Context, registros []entity.Registro) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csvfile: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("csvfile: archivo temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := hoja.Codificar(tmp, registros, s.charset); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("csvfile: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csvfile: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("csvfile: renombrar: %w", err)
	}
	return nil
}
