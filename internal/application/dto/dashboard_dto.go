package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
)

// DashboardDTO respuesta de GET /api/dashboard y payload del evento registro_creado.
type DashboardDTO struct {
	TotalAdentro     int                 `json:"total_adentro"`
	Adentro          []PersonaAdentroDTO `json:"adentro"`
	PorCuerpoLiquido []CuerpoLiquidoDTO  `json:"por_cuerpo_liquido"`
	Historial        []entity.Registro   `json:"historial"`
	// Mensaje informativo cuando no hay datos o no hay nadie adentro.
	Mensaje    string `json:"mensaje,omitempty"`
	GeneradoEn string `json:"generado_en"`
}

// PersonaAdentroDTO último registro de una persona que está adentro (subconjunto de columnas).
type PersonaAdentroDTO struct {
	FechaHora     string `json:"Fecha_Hora"`
	Nombre        string `json:"Nombre"`
	Empresa       string `json:"Empresa"`
	CuerpoLiquido string `json:"Cuerpo_Liquido"`
	Autorizador   string `json:"Autorizador"`
}

// CuerpoLiquidoDTO personas adentro por recinto.
type CuerpoLiquidoDTO struct {
	CuerpoLiquido string          `json:"cuerpo_liquido"`
	Personas      int             `json:"personas"`
	Porcentaje    decimal.Decimal `json:"porcentaje"` // sobre el total adentro, 2 decimales
}

// EventoDTO mensaje enviado por el websocket del dashboard.
type EventoDTO struct {
	Evento string      `json:"evento"`
	Datos  interface{} `json:"datos"`
}
