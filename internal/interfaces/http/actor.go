package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
)

// LocalRequestID key del request id en c.Locals.
const LocalRequestID = "request_id"

// HeaderRequestID header de correlación expuesto al cliente.
const HeaderRequestID = "X-Request-ID"

// RequestID asigna un UUID de correlación a cada request (o respeta el que
// venga del cliente) y lo propaga en la respuesta.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// actorFromCtx arma el contexto de actor para el audit trail a partir del
// request: usuario autenticado, IP, User-Agent y request id de correlación.
func actorFromCtx(c *fiber.Ctx) audit.ActorContext {
	actor := audit.ActorContext{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
	if id := GetUserID(c); id > 0 {
		actor.UserID = &id
	}
	if reqID, ok := c.Locals(LocalRequestID).(string); ok && reqID != "" {
		actor.Metadata = map[string]any{"request_id": reqID}
	}
	return actor
}
