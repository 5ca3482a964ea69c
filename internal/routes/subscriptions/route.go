package subscriptions

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/notifications"
	"calfern.me/pantry/internal/routes"
	"calfern.me/pantry/internal/routes/util"
)

// SubscriptionService registers endpoints with the reminder notification
// topic and mirrors the registration in the data store.
type SubscriptionService struct {
	data          data.SubscriptionDataService
	notifications notifications.NotificationService
}

func NewRoute(subscriptionData data.SubscriptionDataService, service notifications.NotificationService) routes.Service {
	return &SubscriptionService{
		data:          subscriptionData,
		notifications: service,
	}
}

func (s *SubscriptionService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/subscriptions":                  util.AuthorizedRoute(s.ListSubscriptions),
		"GET:/subscriptions/:subscriberId":    util.AuthorizedRoute(s.GetSubscription),
		"POST:/subscriptions":                 util.AuthorizedRoute(s.CreateSubscription),
		"DELETE:/subscriptions/:subscriberId": util.AuthorizedRoute(s.DeleteSubscription),
	}
}

func (s *SubscriptionService) ListSubscriptions(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeList[data.SubscriptionDTO, data.SubscriptionInputDTO](s.data, NewSubscription, event, ctx)
}

func (s *SubscriptionService) GetSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := s.data.Get(util.Username(ctx), util.RequestParam(ctx, "subscriberId"))
	return util.SerializeResponseOK(NewSubscription, item, err)
}

func (s *SubscriptionService) CreateSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := SubscriptionInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if input.Endpoint == nil || input.Protocol == nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("Both endpoint and protocol are required.")
	}

	subscription, err := s.notifications.Subscribe(notifications.SubscribeInput{
		Endpoint: input.Endpoint,
		Protocol: input.Protocol,
	})
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}

	created, err := s.data.Create(util.Username(ctx), data.SubscriptionInputDTO{
		Endpoint:      input.Endpoint,
		Protocol:      input.Protocol,
		SubscriberArn: &subscription.SubscriberId,
	})
	return util.SerializeResponseOK(NewSubscription, created, err)
}

func (s *SubscriptionService) DeleteSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	subscription, err := s.data.Get(util.Username(ctx), util.RequestParam(ctx, "subscriberId"))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	if err := s.notifications.Unsubscribe(subscription.SubscriberArn); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer(err.Error())
	}
	return util.SerializeResponseNoContent(s.data.Delete(util.Username(ctx), subscription.SK))
}
