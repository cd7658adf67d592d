package server

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"helloapi/docs"
	"helloapi/internal/config"
	handlers "helloapi/internal/http/handler"
	"helloapi/internal/http/middleware"
	"helloapi/internal/health"
)

// Deps carries the collaborators the application is built with.
type Deps struct {
	// Registry receives request and runtime metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
	// Checkers back the /health readiness probe.
	Checkers []health.Checker
	// LogWriter receives request logs. Defaults to stdout.
	LogWriter io.Writer
}

// New builds the Fiber application: global error handler, middleware, and routes.
func New(cfg *config.AppConfig, deps Deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ServerHeader:          cfg.AppName,
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(
		otelfiber.WithNext(func(c *fiber.Ctx) bool {
			return c.Path() == middleware.MetricsPath
		}),
	))
	if deps.LogWriter != nil {
		app.Use(middleware.LoggerWithWriter(deps.LogWriter, cfg.Location()))
	} else {
		app.Use(middleware.Logger(cfg.Location()))
	}

	if cfg.MetricsEnabled {
		reg := deps.Registry
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		if err := registerMetrics(app, reg); err != nil {
			return nil, err
		}
	}

	handlers.RegisterRoutes(app, deps.Checkers...)

	if cfg.SwaggerEnabled {
		registerSwagger(app)
	}

	return app, nil
}

func registerMetrics(app *fiber.App, reg *prometheus.Registry) error {
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return err
	}

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}
	app.Use(prom.Handler())
	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return nil
}

// registerSwagger serves Swagger UI. doc.json is rendered with the host and scheme
// of the request.
func registerSwagger(app *fiber.App) {
	// docs.SwaggerInfo is package state shared by all requests.
	var mu sync.Mutex
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		if c.Params("*") != "doc.json" {
			return swagger.HandlerDefault(c)
		}

		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		mu.Lock()
		defer mu.Unlock()
		docs.SwaggerInfo.Host = c.Hostname()
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})
}
