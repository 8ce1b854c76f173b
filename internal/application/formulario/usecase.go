// Package formulario orquesta las sesiones del formulario de ingreso/salida:
// aplica la máquina de estados, persiste el registro y avisa a los dashboards.
package formulario

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gar-aguas/control-rf29/internal/application/dto"
	"github.com/gar-aguas/control-rf29/internal/application/ports"
	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
	"github.com/gar-aguas/control-rf29/pkg/logger"
	"github.com/gar-aguas/control-rf29/pkg/metrics"
)

// MensajeEnviado confirmación mostrada tras un envío exitoso.
const MensajeEnviado = "¡Formulario de %s enviado correctamente!"

// Resumidor entrega el resumen del dashboard que acompaña al evento registro_creado.
type Resumidor interface {
	Resumen(ctx context.Context) *dto.DashboardDTO
}

// Deps dependencias del caso de uso. Notificador, Resumidor y Metrics son opcionales.
type Deps struct {
	Registros   repository.RegistroRepository
	Sesiones    repository.SesionRepository
	Notificador ports.Notificador
	Resumidor   Resumidor
	Log         *logger.Logger
	Metrics     *metrics.Metrics
	Loc         *time.Location
	ReinicioMS  int
}

// UseCase casos de uso del formulario.
type UseCase struct {
	registros   repository.RegistroRepository
	sesiones    repository.SesionRepository
	notificador ports.Notificador
	resumidor   Resumidor
	log         *logger.Logger
	metrics     *metrics.Metrics
	loc         *time.Location
	reinicioMS  int
	now         func() time.Time

	// serializa leer-concatenar-reemplazar dentro del proceso
	mu sync.Mutex
	// serializa cargar-transicionar-guardar por sesión
	locks *candados
}

// NewUseCase construye el caso de uso del formulario.
func NewUseCase(d Deps) *UseCase {
	uc := &UseCase{
		registros:   d.Registros,
		sesiones:    d.Sesiones,
		notificador: d.Notificador,
		resumidor:   d.Resumidor,
		log:         d.Log,
		metrics:     d.Metrics,
		loc:         d.Loc,
		reinicioMS:  d.ReinicioMS,
		now:         time.Now,
		locks:       newCandados(),
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.loc == nil {
		uc.loc = time.UTC
	}
	return uc
}

// IniciarSesion crea una sesión nueva en el paso 1.
func (uc *UseCase) IniciarSesion(ctx context.Context) (*dto.SesionResponse, error) {
	id := uuid.NewString()
	estado := wizard.Inicial()
	if err := uc.sesiones.Save(ctx, id, estado); err != nil {
		return nil, fmt.Errorf("%w: guardar sesión: %v", domain.ErrStoreUnavailable, err)
	}
	return &dto.SesionResponse{SesionID: id, Vista: wizard.Render(estado)}, nil
}

// ObtenerVista devuelve la vista actual. Para una sesión desconocida o expirada muestra
// el paso 1 sin crearla.
func (uc *UseCase) ObtenerVista(ctx context.Context, id string) (*dto.SesionResponse, error) {
	estado, _, err := uc.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SesionResponse{SesionID: id, Vista: wizard.Render(estado)}, nil
}

// Ejecutar aplica la acción sobre la sesión.
//
// Retorna:
//   - respuesta con Mensaje y Registro si se envió el formulario.
//   - (respuesta, *wizard.ErrorValidacion) si faltan campos; la Vista conserva lo ingresado.
//   - (respuesta, wizard.ErrAccionInvalida) si la acción no existe en el paso actual.
//   - domain.ErrNotFound si la sesión no existe o expiró; no se crea.
//   - domain.ErrStoreUnavailable si no se pudo escribir; la sesión sigue en el paso 3.
//
// Las acciones sobre una misma sesión se ejecutan de a una: un doble envío sólo agrega un registro.
func (uc *UseCase) Ejecutar(ctx context.Context, id string, req dto.AccionRequest) (*dto.SesionResponse, error) {
	unlock := uc.locks.lock(id)
	defer unlock()

	estado, existe, err := uc.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, fmt.Errorf("%w: sesión %s inexistente o expirada", domain.ErrNotFound, id)
	}

	accion := req.ToAccion()
	res, err := wizard.Transicion(estado, accion, uc.now().In(uc.loc))
	if err != nil {
		if ve, ok := wizard.EsErrorValidacion(err); ok {
			uc.metrics.IncValidacion(strconv.Itoa(int(ve.Paso)))
			if serr := uc.sesiones.Save(ctx, id, res.Estado); serr != nil {
				return nil, fmt.Errorf("%w: guardar sesión: %v", domain.ErrStoreUnavailable, serr)
			}
		}
		return &dto.SesionResponse{SesionID: id, Vista: wizard.Render(res.Estado)}, err
	}

	if res.Registro == nil {
		if err := uc.sesiones.Save(ctx, id, res.Estado); err != nil {
			return nil, fmt.Errorf("%w: guardar sesión: %v", domain.ErrStoreUnavailable, err)
		}
		return &dto.SesionResponse{SesionID: id, Vista: wizard.Render(res.Estado)}, nil
	}

	if err := uc.agregar(ctx, *res.Registro); err != nil {
		uc.metrics.IncErrorAlmacen("escritura")
		uc.log.Error().Err(err).Str("sesion", id).Msg("formulario: no se pudo guardar el registro")
		// La sesión queda en el paso 3 con lo ingresado, para reintentar.
		pendiente := estado
		pendiente.Borrador = wizard.Borrador{
			Nombre: accion.Nombre, RUTSAP: accion.RUTSAP,
			Empresa: accion.Empresa, CuerpoLiquido: accion.CuerpoLiquido,
		}
		if serr := uc.sesiones.Save(ctx, id, pendiente); serr != nil {
			uc.log.Warn().Err(serr).Str("sesion", id).Msg("formulario: no se pudo conservar el paso 3")
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	uc.metrics.IncRegistro(res.Registro.Movimiento)
	uc.log.Info().
		Str("sesion", id).
		Str("movimiento", res.Registro.Movimiento).
		Str("cuerpo_liquido", res.Registro.CuerpoLiquido).
		Msg("registro guardado")

	if err := uc.sesiones.Save(ctx, id, res.Estado); err != nil {
		// El registro ya quedó escrito; sólo se pierde el reinicio de la sesión.
		uc.log.Warn().Err(err).Str("sesion", id).Msg("formulario: no se pudo reiniciar la sesión")
	}
	uc.notificar(ctx)

	return &dto.SesionResponse{
		SesionID:   id,
		Vista:      wizard.Render(res.Estado),
		Mensaje:    fmt.Sprintf(MensajeEnviado, res.Registro.Movimiento),
		Registro:   res.Registro,
		ReinicioMS: uc.reinicioMS,
	}, nil
}

// CerrarSesion descarta la sesión (el usuario abandona el formulario). Idempotente.
func (uc *UseCase) CerrarSesion(ctx context.Context, id string) error {
	unlock := uc.locks.lock(id)
	defer unlock()
	if err := uc.sesiones.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: borrar sesión: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// cargar devuelve el estado guardado, o el inicial y false si la sesión no existe.
func (uc *UseCase) cargar(ctx context.Context, id string) (wizard.Estado, bool, error) {
	estado, ok, err := uc.sesiones.Get(ctx, id)
	if err != nil {
		return wizard.Estado{}, false, fmt.Errorf("%w: leer sesión: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		return wizard.Inicial(), false, nil
	}
	return estado, true, nil
}

// agregar persiste un registro. Usa el append atómico del almacén si existe; si no,
// lee todo, concatena y reemplaza. Una lectura fallida aborta la escritura para no
// sobrescribir el historial con una sola fila.
func (uc *UseCase) agregar(ctx context.Context, r entity.Registro) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if ap, ok := uc.registros.(repository.RegistroAppender); ok {
		return ap.Append(ctx, r)
	}
	actuales, err := uc.registros.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("leer registros: %w", err)
	}
	nuevos := make([]entity.Registro, 0, len(actuales)+1)
	nuevos = append(nuevos, actuales...)
	nuevos = append(nuevos, r)
	if err := uc.registros.ReplaceAll(ctx, nuevos); err != nil {
		return fmt.Errorf("reemplazar registros: %w", err)
	}
	return nil
}

func (uc *UseCase) notificar(ctx context.Context) {
	if uc.notificador == nil || uc.resumidor == nil {
		return
	}
	if err := uc.notificador.Notificar(ctx, ports.EventoRegistroCreado, uc.resumidor.Resumen(ctx)); err != nil {
		uc.log.Warn().Err(err).Msg("formulario: no se pudo notificar a los dashboards")
	}
}

