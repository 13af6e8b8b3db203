package rest

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func requestLog(ctx *fiber.Ctx) *logrus.Entry {
	entry := logrus.
		WithField("remote_addr", ctx.Context().RemoteAddr()).
		WithField("path", ctx.Path()).
		WithField("z_referer", string(ctx.Request().Header.Peek("Referer"))).
		WithField("z_user_agent", string(ctx.Request().Header.Peek("User-Agent"))).
		WithField("z_x_forwarded_for", string(ctx.Request().Header.Peek("X-Forwarded-For")))
	if requestId, ok := ctx.Locals(requestIdLocalsKey).(string); ok {
		entry = entry.WithField("request_id", requestId)
	}
	return entry
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.
			Status(fe.Code).
			JSON(&ErrorResponse{Error: fe.Message})
	}
	requestLog(ctx).WithError(err).Errorln("Internal server error.")
	// keep internal server errors private. reply with generic error message.
	return ctx.
		Status(fiber.ErrInternalServerError.Code).
		JSON(&ErrorResponse{Error: fiber.ErrInternalServerError.Message})
}

const MessageNoEndpoint = "Endpoint not found"

func NotFoundHandler(ctx *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, MessageNoEndpoint)
}

func JsonErrorResponse(message string) string {
	bytes, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		panic(err)
	}
	return string(bytes)
}
