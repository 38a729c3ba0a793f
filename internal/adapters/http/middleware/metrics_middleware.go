package middleware

import (
	"strconv"
	"time"

	"aerodesk/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware records HTTP metrics for each request. The route
// pattern is used as the endpoint label so path parameters do not blow
// up cardinality.
func MetricsMiddleware(reg *metrics.MetricsRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		endpoint := c.Route().Path
		if endpoint == "" {
			endpoint = "unknown"
		}

		reg.HTTPRequestsTotal.WithLabelValues(
			endpoint,
			c.Method(),
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()

		reg.HTTPRequestDuration.WithLabelValues(
			endpoint,
			c.Method(),
		).Observe(time.Since(start).Seconds())

		return err
	}
}
