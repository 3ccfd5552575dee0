package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "marcapi/docs"
	"marcapi/internal/http/middleware"
	"marcapi/internal/marc"
	"marcapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. db is nil when the
// conversion log is disabled; gatherer nil skips /metrics.
func RegisterRoutes(app *fiber.App, db *sql.DB, convSvc service.ConversionService, gatherer prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	pergamum := app.Group("/pergamum", middleware.NoStore())
	pergamum.Get("/mrc", ConvertRecord(convSvc, marc.FormatISO2709))
	pergamum.Get("/xml", ConvertRecord(convSvc, marc.FormatMARCXML))
	pergamum.Get("/mrk", ConvertRecord(convSvc, marc.FormatMnemonic))

	app.Get("/conversions", ListConversions(convSvc))
}

// RegisterSwagger serves the Swagger UI and doc.json. The document leaves host and schemes
// empty so the UI targets whatever origin served it.
func RegisterSwagger(app *fiber.App) {
	app.Get("/swagger/*", swagger.HandlerDefault)
}
