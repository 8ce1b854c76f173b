package entity

import (
	"strings"
	"time"
)

// Tipos de movimiento del personal.
const (
	MovimientoIngreso = "Ingreso"
	MovimientoSalida  = "Salida"
)

// NoAplicaSalida reemplaza Autorizador y Motivo en los registros de Salida.
const NoAplicaSalida = "N/A (Salida)"

// FormatoFechaHora es el formato fijo de la columna Fecha_Hora (YYYY-MM-DD HH:MM:SS).
// Al tener ancho fijo, el orden lexicográfico coincide con el cronológico.
const FormatoFechaHora = "2006-01-02 15:04:05"

// Nombres de columna de la planilla, en orden.
const (
	ColFechaHora     = "Fecha_Hora"
	ColMovimiento    = "Movimiento"
	ColNombre        = "Nombre"
	ColRUTSAP        = "RUT_SAP"
	ColEmpresa       = "Empresa"
	ColCuerpoLiquido = "Cuerpo_Liquido"
	ColAutorizador   = "Autorizador"
	ColMotivo        = "Motivo"
)

// Columnas es el esquema fijo de la planilla de registros.
var Columnas = []string{
	ColFechaHora, ColMovimiento, ColNombre, ColRUTSAP,
	ColEmpresa, ColCuerpoLiquido, ColAutorizador, ColMotivo,
}

// Registro es un evento de ingreso o salida. Inmutable una vez escrito.
type Registro struct {
	FechaHora     string `json:"Fecha_Hora"`
	Movimiento    string `json:"Movimiento"`
	Nombre        string `json:"Nombre"`
	RUTSAP        string `json:"RUT_SAP"`
	Empresa       string `json:"Empresa"`
	CuerpoLiquido string `json:"Cuerpo_Liquido"`
	Autorizador   string `json:"Autorizador"`
	Motivo        string `json:"Motivo"`
}

// Valores devuelve los campos en el orden de Columnas.
func (r Registro) Valores() []string {
	return []string{
		r.FechaHora, r.Movimiento, r.Nombre, r.RUTSAP,
		r.Empresa, r.CuerpoLiquido, r.Autorizador, r.Motivo,
	}
}

// Set asigna el valor de la columna indicada. Columnas desconocidas se ignoran.
func (r *Registro) Set(columna, valor string) {
	switch columna {
	case ColFechaHora:
		r.FechaHora = valor
	case ColMovimiento:
		r.Movimiento = valor
	case ColNombre:
		r.Nombre = valor
	case ColRUTSAP:
		r.RUTSAP = valor
	case ColEmpresa:
		r.Empresa = valor
	case ColCuerpoLiquido:
		r.CuerpoLiquido = valor
	case ColAutorizador:
		r.Autorizador = valor
	case ColMotivo:
		r.Motivo = valor
	}
}

// Vacio indica si todas las columnas están en blanco (filas fantasma de la planilla).
func (r Registro) Vacio() bool {
	for _, v := range r.Valores() {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// EsIngreso indica si el registro es un ingreso.
func (r Registro) EsIngreso() bool {
	return r.Movimiento == MovimientoIngreso
}

// FormatearFechaHora aplica FormatoFechaHora.
func FormatearFechaHora(t time.Time) string {
	return t.Format(FormatoFechaHora)
}
