package rest

import (
	"fmt"

	"github.com/boredclicker/bored"
	"github.com/boredclicker/bored/observability"
	"github.com/gofiber/fiber/v2"
)

const (
	MessageNoActivity       = "No activity found with the specified parameters"
	MessageInvalidArguments = "Failed to query due to error in arguments"
)

type ActivityController struct {
	Resolver *bored.Resolver
}

func (c *ActivityController) InstallTo(app *fiber.App) {
	app.Get("/activity", c.serveActivity)
	app.Get("/activity/types", c.serveTypes)
}

// ActivityBody is the json body of found activity. Key stays text.
type ActivityBody struct {
	Activity      string  `json:"activity"`
	Type          string  `json:"type"`
	Participants  int     `json:"participants"`
	Price         float64 `json:"price"`
	Link          string  `json:"link"`
	Key           string  `json:"key"`
	Accessibility float64 `json:"accessibility"`
}

func NewActivityBody(a bored.Activity) ActivityBody {
	return ActivityBody{
		Activity:      a.Activity,
		Type:          string(a.Type),
		Participants:  a.Participants,
		Price:         a.Price,
		Link:          a.Link,
		Key:           string(a.Key),
		Accessibility: a.Accessibility,
	}
}

// OutcomeStatus maps resolver outcome to http status and error message.
// Message is empty for found activity.
func OutcomeStatus(kind bored.OutcomeKind) (int, string) {
	switch kind {
	case bored.OutcomeFound:
		return fiber.StatusOK, ""
	case bored.OutcomeNotFound:
		return fiber.StatusNotFound, MessageNoActivity
	default:
		return fiber.StatusUnprocessableEntity, MessageInvalidArguments
	}
}

func (c *ActivityController) serveActivity(ctx *fiber.Ctx) error {
	params := make(map[string]string)
	// first non-empty value wins when parameter is repeated
	ctx.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		name := string(key)
		if params[name] == "" {
			params[name] = string(value)
		}
	})

	outcome, err := c.Resolver.Resolve(ctx.Context(), params)
	if err != nil {
		return fmt.Errorf("resolve activity: %w", err)
	}
	observability.RecordOutcome(outcome.Kind)

	status, message := OutcomeStatus(outcome.Kind)
	if outcome.Kind != bored.OutcomeFound {
		if outcome.Cause != nil {
			requestLog(ctx).WithError(outcome.Cause).Debugln("Rejected activity query.")
		}
		return fiber.NewError(status, message)
	}
	return ctx.Status(status).JSON(NewActivityBody(outcome.Activity))
}

func (c *ActivityController) serveTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(bored.Types())
}
