// Package acceso implementa la clave compartida que habilita el Dashboard en Vivo.
package acceso

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/pkg/jwt"
)

// Entradas del menú de navegación.
const (
	OpcionFormulario = "Formulario de Acceso"
	OpcionDashboard  = "Dashboard en Vivo"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase valida la clave y emite tokens de rol dashboard. No hay identidad por usuario.
type UseCase struct {
	hash   []byte
	jwtCfg JWTConfig
}

// NewUseCase hashea la clave con bcrypt al arrancar; sólo se guarda el hash.
func NewUseCase(clave string, jwtCfg JWTConfig) (*UseCase, error) {
	if clave == "" {
		return nil, fmt.Errorf("acceso: clave vacía")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("acceso: JWT secret vacío")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(clave), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("acceso: hash de clave: %w", err)
	}
	return &UseCase{hash: hash, jwtCfg: jwtCfg}, nil
}

// Acceder compara la clave y devuelve un token. Clave incorrecta → domain.ErrUnauthorized.
func (uc *UseCase) Acceder(_ context.Context, in dto.AccesoRequest) (*dto.AccesoResponse, error) {
	if bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Clave)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.RoleDashboard, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("acceso: generar token: %w", err)
	}
	return &dto.AccesoResponse{Token: token, Rol: jwt.RoleDashboard, ExpiraEnMi: uc.jwtCfg.ExpMinutes}, nil
}

// Menu devuelve las entradas visibles; el dashboard sólo con un rol válido.
func (uc *UseCase) Menu(rol string) dto.MenuResponse {
	opciones := []string{OpcionFormulario}
	if rol == jwt.RoleDashboard {
		opciones = append(opciones, OpcionDashboard)
	}
	return dto.MenuResponse{Opciones: opciones}
}
