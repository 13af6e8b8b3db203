package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIdLocalsKey = "request_id"

const RequestIdHeader = "X-Request-Id"

// LogHandler tags every request with an id and logs it.
func LogHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestId := uuid.New().String()
		ctx.Locals(requestIdLocalsKey, requestId)
		ctx.Set(RequestIdHeader, requestId)
		requestLog(ctx).Infoln("Handling request.")
		return ctx.Next()
	}
}
