// Package wizard modela el formulario de tres pasos como una máquina de estados pura.
// Cada transición recibe un Estado y devuelve el siguiente; no hay estado global.
package wizard

import "github.com/gar-aguas/control-rf29/internal/domain/entity"

// Paso del formulario (1..3).
type Paso int

const (
	PasoMovimiento   Paso = 1
	PasoAutorizacion Paso = 2
	PasoDatos        Paso = 3
)

// Nombres de campo usados en acciones, vistas y errores de validación.
const (
	CampoMovimiento    = "movimiento"
	CampoAutorizador   = "autorizador"
	CampoMotivo        = "motivo"
	CampoNombre        = "nombre"
	CampoRUTSAP        = "rut_sap"
	CampoEmpresa       = "empresa"
	CampoCuerpoLiquido = "cuerpo_liquido"
)

// Borrador guarda lo que el usuario escribió en el paso actual y aún no se confirma.
type Borrador struct {
	Movimiento    string `json:"movimiento,omitempty"`
	Autorizador   string `json:"autorizador,omitempty"`
	Motivo        string `json:"motivo,omitempty"`
	Nombre        string `json:"nombre,omitempty"`
	RUTSAP        string `json:"rut_sap,omitempty"`
	Empresa       string `json:"empresa,omitempty"`
	CuerpoLiquido string `json:"cuerpo_liquido,omitempty"`
}

// Estado de una sesión del formulario. Se reemplaza completo en cada transición.
type Estado struct {
	Paso        Paso     `json:"paso"`
	Movimiento  string   `json:"movimiento"`
	Autorizador string   `json:"autorizador"`
	Motivo      string   `json:"motivo"`
	Borrador    Borrador `json:"borrador"`
}

// Inicial devuelve el estado de una sesión nueva.
func Inicial() Estado {
	return Estado{Paso: PasoMovimiento}
}

// Valido indica si el estado es alcanzable por transiciones legítimas.
// Un estado inválido (p. ej. leído corrupto desde Redis) se trata como sesión nueva.
func (e Estado) Valido() bool {
	switch e.Paso {
	case PasoMovimiento:
		return true
	case PasoAutorizacion:
		return e.Movimiento == entity.MovimientoIngreso
	case PasoDatos:
		if e.Movimiento == entity.MovimientoSalida {
			return true
		}
		return e.Movimiento == entity.MovimientoIngreso &&
			entity.EsAutorizadorValido(e.Autorizador) && e.Motivo != ""
	default:
		return false
	}
}
