package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gar-aguas/control-rf29/internal/application/acceso"
	"github.com/gar-aguas/control-rf29/internal/application/dashboard"
	"github.com/gar-aguas/control-rf29/internal/application/formulario"
	infrapdf "github.com/gar-aguas/control-rf29/internal/infrastructure/pdf"
	httpRouter "github.com/gar-aguas/control-rf29/internal/interfaces/http"
	"github.com/gar-aguas/control-rf29/internal/interfaces/ws"
	"github.com/gar-aguas/control-rf29/pkg/config"
	"github.com/gar-aguas/control-rf29/pkg/logger"
	"github.com/gar-aguas/control-rf29/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("sesiones", cfg.Session.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		if cfg.App.Env != "development" {
			log.Fatal().Msg("JWT_SECRET es obligatorio fuera de development")
		}
		cfg.JWT.Secret = secretoEfimero()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto efímero, los tokens no sobreviven reinicios")
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria desconocida, se usa UTC-3")
		loc = time.FixedZone("UTC-3", -3*60*60)
	}

	ctx := context.Background()
	registros, cerrarAlmacen, err := abrirAlmacen(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("almacén de registros")
	}
	defer cerrarAlmacen()

	sesiones, cerrarSesiones, err := abrirSesiones(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Session.Driver).Msg("almacén de sesiones")
	}
	defer cerrarSesiones()

	m := metrics.New()
	hub := ws.NewHub(log)
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go hub.Run(hubCtx)

	dashboardUC := dashboard.NewUseCase(registros, infrapdf.NewMarotoPDFGenerator(), log, m, cfg.Form.HistoryLimit, loc)
	formularioUC := formulario.NewUseCase(formulario.Deps{
		Registros:   registros,
		Sesiones:    sesiones,
		Notificador: hub,
		Resumidor:   dashboardUC,
		Log:         log,
		Metrics:     m,
		Loc:         loc,
		ReinicioMS:  cfg.Form.ConfirmationMS,
	})
	accesoUC, err := acceso.NewUseCase(cfg.Gate.Passphrase, acceso.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("acceso al dashboard")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Control RF29 API",
		}))
	} else {
		log.Warn().Str("archivo", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FormularioUC: formularioUC,
		DashboardUC:  dashboardUC,
		AccesoUC:     accesoUC,
		Hub:          hub,
		Metrics:      m,
		Log:          log,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopHub()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func secretoEfimero() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar secreto JWT: " + err.Error())
	}
	return hex.EncodeToString(b)
}
