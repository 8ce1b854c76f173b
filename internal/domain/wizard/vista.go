package wizard

import "github.com/gar-aguas/control-rf29/internal/domain/entity"

// Textos fijos del formulario.
const (
	TituloFormulario      = "Control ingreso y salida recinto cuerpo líquido"
	DescripcionFormulario = "Este control de ingreso y salida es obligatorio para trabajadores y/o visitas que requieran acceder a un recinto de cuerpo liquido de la Gerencia Aguas y Relaves."
)

// Tipos de control de un campo.
const (
	TipoRadio  = "radio"
	TipoSelect = "select"
	TipoTexto  = "texto"
	TipoArea   = "area"
)

// Campo control a dibujar en la vista.
type Campo struct {
	Nombre      string   `json:"nombre"`
	Etiqueta    string   `json:"etiqueta"`
	Tipo        string   `json:"tipo"`
	Obligatorio bool     `json:"obligatorio"`
	Opciones    []string `json:"opciones,omitempty"`
	Valor       string   `json:"valor"`
}

// Boton acción disponible en el paso.
type Boton struct {
	Accion   TipoAccion `json:"accion"`
	Etiqueta string     `json:"etiqueta"`
}

// Vista modelo de presentación de un paso, independiente del transporte.
type Vista struct {
	Titulo      string  `json:"titulo"`
	Descripcion string  `json:"descripcion"`
	Paso        Paso    `json:"paso"`
	Seccion     string  `json:"seccion"`
	Campos      []Campo `json:"campos"`
	Botones     []Boton `json:"botones"`
}

var (
	botonSiguiente = Boton{Accion: AccionSiguiente, Etiqueta: "Siguiente"}
	botonAtras     = Boton{Accion: AccionAtras, Etiqueta: "Atrás"}
	botonEnviar    = Boton{Accion: AccionEnviar, Etiqueta: "Enviar"}
)

// Render construye la vista del paso actual. Función pura.
func Render(e Estado) Vista {
	if !e.Valido() {
		e = Inicial()
	}
	v := Vista{Titulo: TituloFormulario, Descripcion: DescripcionFormulario, Paso: e.Paso}
	b := e.Borrador
	switch e.Paso {
	case PasoMovimiento:
		v.Seccion = "Sección 1: Pregunta *"
		v.Campos = []Campo{{
			Nombre: CampoMovimiento, Etiqueta: "Seleccione opción:", Tipo: TipoRadio, Obligatorio: true,
			Opciones: entity.Movimientos, Valor: valorOr(b.Movimiento, entity.MovimientoIngreso),
		}}
		v.Botones = []Boton{botonSiguiente}
	case PasoAutorizacion:
		v.Seccion = "Sección 2: Autorización"
		v.Campos = []Campo{
			{
				Nombre: CampoAutorizador, Etiqueta: "Persona que autoriza *", Tipo: TipoSelect, Obligatorio: true,
				Opciones: entity.Autorizadores, Valor: valorOr(b.Autorizador, entity.PlaceholderAutorizador),
			},
			{Nombre: CampoMotivo, Etiqueta: "Motivo de ingreso *", Tipo: TipoArea, Obligatorio: true, Valor: b.Motivo},
		}
		v.Botones = []Boton{botonAtras, botonSiguiente}
	default:
		v.Seccion = "Sección 3: Datos"
		v.Campos = []Campo{
			{Nombre: CampoNombre, Etiqueta: "Nombre y Apellido *", Tipo: TipoTexto, Obligatorio: true, Valor: b.Nombre},
			{Nombre: CampoRUTSAP, Etiqueta: "Rut o SAP *", Tipo: TipoTexto, Obligatorio: true, Valor: b.RUTSAP},
			{Nombre: CampoEmpresa, Etiqueta: "Empresa *", Tipo: TipoTexto, Obligatorio: true, Valor: b.Empresa},
			{
				Nombre: CampoCuerpoLiquido, Etiqueta: "Cuerpo liquido *", Tipo: TipoSelect, Obligatorio: true,
				Opciones: entity.CuerposLiquidos, Valor: valorOr(b.CuerpoLiquido, entity.PlaceholderCuerpoLiquido),
			},
		}
		v.Botones = []Boton{botonAtras, botonEnviar}
	}
	return v
}

func valorOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
