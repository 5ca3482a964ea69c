package reminders

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/pantry"
	remindersEngine "calfern.me/pantry/internal/reminders"
	"calfern.me/pantry/internal/routes"
	"calfern.me/pantry/internal/routes/util"
)

type ReminderService struct {
	sync    *remindersEngine.Synchronizer
	dates   *pantry.DateCalculator
	convert func(data.ReminderDTO) Reminder
}

func NewRoute(sync *remindersEngine.Synchronizer, dates *pantry.DateCalculator) routes.Service {
	return &ReminderService{
		sync:    sync,
		dates:   dates,
		convert: NewReminderConverter(dates),
	}
}

func (rs *ReminderService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/reminders":                util.AuthorizedRoute(rs.ListReminders),
		"GET:/reminders/due":            util.AuthorizedRoute(rs.ListDueReminders),
		"GET:/reminders/count":          util.AuthorizedRoute(rs.GetActiveCount),
		"PUT:/reminders/:itemId/status": util.AuthorizedRoute(rs.UpdateReminderStatus),
	}
}

func (rs *ReminderService) serializeAll(reminders []data.ReminderDTO, err error) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeResponseOK(func(dtos []data.ReminderDTO) []Reminder {
		return *util.MapOnList(&dtos, rs.convert)
	}, reminders, err)
}

func (rs *ReminderService) ListReminders(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	reminders, err := rs.sync.ListAll(util.Username(ctx))
	return rs.serializeAll(reminders, err)
}

// ListDueReminders returns undismissed reminders whose date has arrived,
// judged against the reference clock at request time.
func (rs *ReminderService) ListDueReminders(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	reminders, err := rs.sync.ListActiveDue(util.Username(ctx), rs.dates.Now())
	return rs.serializeAll(reminders, err)
}

func (rs *ReminderService) GetActiveCount(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	count, err := rs.sync.ActiveCount(util.Username(ctx), rs.dates.Now())
	return util.SerializeResponseOK(func(active int) ActiveCount {
		return ActiveCount{Active: active}
	}, count, err)
}

// UpdateReminderStatus is the explicit user toggle; dismissing here is
// independent of the item lifecycle and un-dismissing only ever happens
// through this route.
func (rs *ReminderService) UpdateReminderStatus(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := StatusInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if input.Dismissed == nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("The dismissed field is required.")
	}
	updated, err := rs.sync.SetDismissed(util.Username(ctx), util.RequestParam(ctx, "itemId"), *input.Dismissed)
	return util.SerializeResponseOK(rs.convert, updated, err)
}
