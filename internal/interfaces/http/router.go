package http

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gar-aguas/control-rf29/internal/application/acceso"
	"github.com/gar-aguas/control-rf29/internal/application/dashboard"
	"github.com/gar-aguas/control-rf29/internal/application/formulario"
	"github.com/gar-aguas/control-rf29/internal/application/ports"
	"github.com/gar-aguas/control-rf29/internal/interfaces/ws"
	"github.com/gar-aguas/control-rf29/pkg/jwt"
	"github.com/gar-aguas/control-rf29/pkg/logger"
	"github.com/gar-aguas/control-rf29/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FormularioUC *formulario.UseCase
	DashboardUC  *dashboard.UseCase
	AccesoUC     *acceso.UseCase
	Hub          *ws.Hub
	Metrics      *metrics.Metrics
	Log          *logger.Logger
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Formulario (público)
	formHandler := NewFormularioHandler(deps.FormularioUC)
	api.Get("/catalogos", formHandler.Catalogos)
	sesiones := api.Group("/formulario/sesiones")
	sesiones.Post("/", formHandler.IniciarSesion)
	sesiones.Get("/:id", formHandler.ObtenerVista)
	sesiones.Delete("/:id", formHandler.CerrarSesion)
	sesiones.Post("/:id/acciones", formHandler.Accion)

	// Acceso al dashboard
	accesoHandler := NewAccesoHandler(deps.AccesoUC)
	api.Post("/acceso", accesoHandler.Acceder)
	api.Get("/menu", OptionalAuth(deps.JWTSecret), accesoHandler.Menu)

	// Dashboard (requiere token de rol dashboard)
	soloDashboard := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleDashboard)}
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	dash := api.Group("/dashboard", soloDashboard...)
	dash.Get("/", dashHandler.GetResumen)
	dash.Get("/reporte.pdf", dashHandler.GetReporte)

	// Websocket de actualizaciones en vivo
	if deps.Hub != nil {
		wsGroup := app.Group("/ws", soloDashboard...)
		wsGroup.Use("/", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		wsGroup.Get("/dashboard", websocket.New(dashboardEnVivo(deps.Hub, deps.DashboardUC, deps.Log)))
	}
}

// dashboardEnVivo envía el resumen actual al conectar y luego deja que el hub difunda
// cada registro nuevo. El loop de lectura sólo detecta el cierre del cliente.
func dashboardEnVivo(hub *ws.Hub, uc *dashboard.UseCase, log *logger.Logger) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		inicial, err := ws.Mensaje(ports.EventoResumen, uc.Resumen(context.Background()))
		if err == nil {
			if err := c.WriteMessage(websocket.TextMessage, inicial); err != nil {
				log.Debug().Err(err).Msg("ws: no se pudo enviar el resumen inicial")
				_ = c.Close()
				return
			}
		}

		hub.Register(c)
		defer hub.Unregister(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}
