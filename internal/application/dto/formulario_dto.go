package dto

import (
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
)

// AccionRequest body de POST /api/formulario/sesiones/:id/acciones.
// Sólo se leen los campos del paso actual; el resto se ignora.
type AccionRequest struct {
	Accion        string `json:"accion" validate:"required,oneof=siguiente atras enviar"`
	Movimiento    string `json:"movimiento"`
	Autorizador   string `json:"autorizador"`
	Motivo        string `json:"motivo"`
	Nombre        string `json:"nombre"`
	RUTSAP        string `json:"rut_sap"`
	Empresa       string `json:"empresa"`
	CuerpoLiquido string `json:"cuerpo_liquido"`
}

// ToAccion convierte el request al input de la máquina de estados.
func (r AccionRequest) ToAccion() wizard.Accion {
	return wizard.Accion{
		Tipo:          wizard.TipoAccion(r.Accion),
		Movimiento:    r.Movimiento,
		Autorizador:   r.Autorizador,
		Motivo:        r.Motivo,
		Nombre:        r.Nombre,
		RUTSAP:        r.RUTSAP,
		Empresa:       r.Empresa,
		CuerpoLiquido: r.CuerpoLiquido,
	}
}

// SesionResponse estado visible de una sesión del formulario.
// Tras un envío exitoso trae Mensaje, Registro y ReinicioMS; la Vista ya es la del paso 1.
type SesionResponse struct {
	SesionID   string           `json:"sesion_id"`
	Vista      wizard.Vista     `json:"vista"`
	Mensaje    string           `json:"mensaje,omitempty"`
	Registro   *entity.Registro `json:"registro,omitempty"`
	ReinicioMS int              `json:"reinicio_ms,omitempty"`
}

// CatalogosResponse listas fijas del formulario (placeholder primero).
type CatalogosResponse struct {
	Movimientos     []string `json:"movimientos"`
	Autorizadores   []string `json:"autorizadores"`
	CuerposLiquidos []string `json:"cuerpos_liquidos"`
}
