// Package metrics expone instrumentación Prometheus del servidor HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa el registry y los colectores HTTP de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New construye el registry con los colectores de proceso/runtime estándar
// más los contadores HTTP propios.
func New(appName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "convivencia",
			Name:        "http_requests_total",
			Help:        "Total de requests HTTP atendidos.",
			ConstLabels: prometheus.Labels{"app": appName},
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "convivencia",
			Name:        "http_request_duration_seconds",
			Help:        "Duración de los requests HTTP.",
			ConstLabels: prometheus.Labels{"app": appName},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// Middleware instrumenta cada request con contador y latencia. Usa la ruta
// registrada (no el path crudo) para acotar la cardinalidad de las etiquetas.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()

		ruta := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requestsTotal.WithLabelValues(c.Method(), ruta, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(c.Method(), ruta).Observe(time.Since(inicio).Seconds())
		return err
	}
}

// Handler sirve la exposición Prometheus en formato texto.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
