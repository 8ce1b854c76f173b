package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
)

// TipoAccion botón presionado por el usuario.
type TipoAccion string

const (
	AccionSiguiente TipoAccion = "siguiente"
	AccionAtras     TipoAccion = "atras"
	AccionEnviar    TipoAccion = "enviar"
)

// Mensajes de validación mostrados al usuario.
const (
	MsgMovimiento    = "Debe seleccionar 'Ingreso' o 'Salida'."
	MsgAutorizador   = "Debe seleccionar a la 'Persona que autoriza'."
	MsgMotivo        = "El 'Motivo de ingreso' es obligatorio."
	MsgDatos         = "Los campos 'Nombre y Apellido', 'Rut o SAP' y 'Empresa' son obligatorios."
	MsgCuerpoLiquido = "Debe seleccionar el 'Cuerpo liquido'."
)

// ErrAccionInvalida la acción no existe en el paso actual (p. ej. enviar en el paso 1).
var ErrAccionInvalida = fmt.Errorf("%w: acción no válida para el paso actual", domain.ErrConflict)

// Accion es la entrada de una transición: el botón y los valores del paso actual.
type Accion struct {
	Tipo          TipoAccion
	Movimiento    string
	Autorizador   string
	Motivo        string
	Nombre        string
	RUTSAP        string
	Empresa       string
	CuerpoLiquido string
}

// Resultado de una transición. Registro sólo viene informado tras un envío válido.
type Resultado struct {
	Estado   Estado
	Registro *entity.Registro
}

// ErrorValidacion campos obligatorios faltantes o con placeholder en el paso indicado.
type ErrorValidacion struct {
	Paso    Paso
	Campos  []string
	Mensaje string
}

func (e *ErrorValidacion) Error() string { return e.Mensaje }

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ErrorValidacion) Unwrap() error { return domain.ErrInvalidInput }

// EsErrorValidacion extrae el detalle de validación de err, si lo hay.
func EsErrorValidacion(err error) (*ErrorValidacion, bool) {
	var ve *ErrorValidacion
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Transicion aplica la acción sobre el estado y devuelve el siguiente.
// Con error de validación, el Estado devuelto conserva el paso y lleva las entradas en Borrador.
// Con ErrAccionInvalida, el Estado devuelto es el mismo recibido.
func Transicion(e Estado, a Accion, ahora time.Time) (Resultado, error) {
	if !e.Valido() {
		e = Inicial()
	}
	switch e.Paso {
	case PasoMovimiento:
		return pasoMovimiento(e, a)
	case PasoAutorizacion:
		return pasoAutorizacion(e, a)
	default:
		return pasoDatos(e, a, ahora)
	}
}

func pasoMovimiento(e Estado, a Accion) (Resultado, error) {
	if a.Tipo != AccionSiguiente {
		return Resultado{Estado: e}, ErrAccionInvalida
	}
	mov := strings.TrimSpace(a.Movimiento)
	switch mov {
	case entity.MovimientoIngreso:
		return Resultado{Estado: Estado{
			Paso:        PasoAutorizacion,
			Movimiento:  mov,
			Autorizador: e.Autorizador,
			Motivo:      e.Motivo,
			Borrador:    Borrador{Autorizador: e.Autorizador, Motivo: e.Motivo},
		}}, nil
	case entity.MovimientoSalida:
		return Resultado{Estado: Estado{Paso: PasoDatos, Movimiento: mov}}, nil
	default:
		sig := e
		sig.Borrador = Borrador{Movimiento: a.Movimiento}
		return Resultado{Estado: sig}, &ErrorValidacion{
			Paso: PasoMovimiento, Campos: []string{CampoMovimiento}, Mensaje: MsgMovimiento,
		}
	}
}

func pasoAutorizacion(e Estado, a Accion) (Resultado, error) {
	switch a.Tipo {
	case AccionAtras:
		sig := e
		sig.Paso = PasoMovimiento
		sig.Borrador = Borrador{Movimiento: e.Movimiento}
		return Resultado{Estado: sig}, nil
	case AccionSiguiente:
	default:
		return Resultado{Estado: e}, ErrAccionInvalida
	}

	autorizador := strings.TrimSpace(a.Autorizador)
	motivo := strings.TrimSpace(a.Motivo)
	var campos []string
	msg := ""
	if !entity.EsAutorizadorValido(autorizador) {
		campos = append(campos, CampoAutorizador)
		msg = MsgAutorizador
	}
	if motivo == "" {
		campos = append(campos, CampoMotivo)
		if msg == "" {
			msg = MsgMotivo
		}
	}
	if len(campos) > 0 {
		sig := e
		sig.Borrador = Borrador{Autorizador: a.Autorizador, Motivo: a.Motivo}
		return Resultado{Estado: sig}, &ErrorValidacion{Paso: PasoAutorizacion, Campos: campos, Mensaje: msg}
	}
	return Resultado{Estado: Estado{
		Paso:        PasoDatos,
		Movimiento:  e.Movimiento,
		Autorizador: autorizador,
		Motivo:      motivo,
	}}, nil
}

func pasoDatos(e Estado, a Accion, ahora time.Time) (Resultado, error) {
	switch a.Tipo {
	case AccionAtras:
		sig := e
		sig.Borrador = Borrador{}
		if e.Movimiento == entity.MovimientoIngreso {
			sig.Paso = PasoAutorizacion
			sig.Borrador = Borrador{Autorizador: e.Autorizador, Motivo: e.Motivo}
		} else {
			sig.Paso = PasoMovimiento
			sig.Borrador = Borrador{Movimiento: e.Movimiento}
		}
		return Resultado{Estado: sig}, nil
	case AccionEnviar:
	default:
		return Resultado{Estado: e}, ErrAccionInvalida
	}

	nombre := strings.TrimSpace(a.Nombre)
	rut := strings.TrimSpace(a.RUTSAP)
	empresa := strings.TrimSpace(a.Empresa)
	cuerpo := strings.TrimSpace(a.CuerpoLiquido)

	var campos []string
	for _, c := range []struct{ campo, valor string }{
		{CampoNombre, nombre}, {CampoRUTSAP, rut}, {CampoEmpresa, empresa},
	} {
		if c.valor == "" {
			campos = append(campos, c.campo)
		}
	}
	msg := ""
	if len(campos) > 0 {
		msg = MsgDatos
	}
	if !entity.EsCuerpoLiquidoValido(cuerpo) {
		campos = append(campos, CampoCuerpoLiquido)
		if msg == "" {
			msg = MsgCuerpoLiquido
		}
	}
	if len(campos) > 0 {
		sig := e
		sig.Borrador = Borrador{
			Nombre: a.Nombre, RUTSAP: a.RUTSAP, Empresa: a.Empresa, CuerpoLiquido: a.CuerpoLiquido,
		}
		return Resultado{Estado: sig}, &ErrorValidacion{Paso: PasoDatos, Campos: campos, Mensaje: msg}
	}

	autorizador, motivo := e.Autorizador, e.Motivo
	if e.Movimiento != entity.MovimientoIngreso {
		autorizador, motivo = entity.NoAplicaSalida, entity.NoAplicaSalida
	}
	reg := &entity.Registro{
		FechaHora:     entity.FormatearFechaHora(ahora),
		Movimiento:    e.Movimiento,
		Nombre:        nombre,
		RUTSAP:        rut,
		Empresa:       empresa,
		CuerpoLiquido: cuerpo,
		Autorizador:   autorizador,
		Motivo:        motivo,
	}
	return Resultado{Estado: Inicial(), Registro: reg}, nil
}
