package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics agrupa las métricas Prometheus de la aplicación.
type Metrics struct {
	Registry          *prometheus.Registry
	RegistrosEnviados *prometheus.CounterVec
	ValidacionFallida *prometheus.CounterVec
	ErroresAlmacen    *prometheus.CounterVec
	PersonasAdentro   prometheus.Gauge
}

// New crea las métricas y las registra en un registry propio (evita colisiones entre tests).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		RegistrosEnviados: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf29_registros_enviados_total",
			Help: "Registros de ingreso/salida persistidos, por tipo de movimiento",
		}, []string{"movimiento"}),
		ValidacionFallida: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf29_validaciones_fallidas_total",
			Help: "Acciones del formulario rechazadas por validación, por paso",
		}, []string{"paso"}),
		ErroresAlmacen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rf29_errores_almacen_total",
			Help: "Errores del almacén de registros, por operación (lectura/escritura)",
		}, []string{"operacion"}),
		PersonasAdentro: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rf29_personas_adentro",
			Help: "Personas cuyo último registro es un Ingreso (último cálculo del dashboard)",
		}),
	}
	reg.MustRegister(
		m.RegistrosEnviados,
		m.ValidacionFallida,
		m.ErroresAlmacen,
		m.PersonasAdentro,
		collectors.NewGoCollector(),
	)
	return m
}

// IncRegistro suma un registro persistido.
func (m *Metrics) IncRegistro(movimiento string) {
	if m == nil {
		return
	}
	m.RegistrosEnviados.WithLabelValues(movimiento).Inc()
}

// IncValidacion suma un rechazo de validación en el paso indicado.
func (m *Metrics) IncValidacion(paso string) {
	if m == nil {
		return
	}
	m.ValidacionFallida.WithLabelValues(paso).Inc()
}

// IncErrorAlmacen suma un error de lectura o escritura del almacén.
func (m *Metrics) IncErrorAlmacen(operacion string) {
	if m == nil {
		return
	}
	m.ErroresAlmacen.WithLabelValues(operacion).Inc()
}

// SetAdentro actualiza el gauge de ocupación.
func (m *Metrics) SetAdentro(n int) {
	if m == nil {
		return
	}
	m.PersonasAdentro.Set(float64(n))
}
