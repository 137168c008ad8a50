package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logistica-api/pkg/logger"
	"github.com/jhoicas/logistica-api/pkg/metrics"
)

// RequestLogger registra cada petición (método, ruta, status, latencia, usuario) y alimenta las métricas HTTP.
// Los 500 incluyen el error original que writeError dejó en c.Locals.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// el ErrorHandler global escribe la respuesta; aquí solo se registra
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.ObserveHTTP(c.Method(), route, status, elapsed)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if err, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(err)
			} else if chainErr != nil {
				ev = ev.Err(chainErr)
			}
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}
