package baskets

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/baskets"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/routes"
	"calfern.me/pantry/internal/routes/util"
)

type BasketService struct {
	service *baskets.Service
	data    data.BasketDataService
}

func NewRoute(service *baskets.Service, basketData data.BasketDataService) routes.Service {
	return &BasketService{
		service: service,
		data:    basketData,
	}
}

func (bs *BasketService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/baskets":                        util.AuthorizedRoute(bs.ListBaskets),
		"GET:/baskets/:basketId":              util.AuthorizedRoute(bs.GetBasket),
		"POST:/baskets":                       util.AuthorizedRoute(bs.CreateBasket),
		"PUT:/baskets/:basketId":              util.AuthorizedRoute(bs.UpdateBasketInfo),
		"POST:/baskets/:basketId/ingredients": util.AuthorizedRoute(bs.AddIngredient),
		"DELETE:/baskets/:basketId":           util.AuthorizedRoute(bs.DeleteBasket),
	}
}

func (bs *BasketService) ListBaskets(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQuery(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	results, err := bs.data.List(util.Username(ctx), params)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	sort.SliceStable(results.Items, func(i, j int) bool {
		return results.Items[i].Name < results.Items[j].Name
	})
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewBasket), results, nil)
}

func (bs *BasketService) GetBasket(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	basket, err := bs.data.Get(util.Username(ctx), util.RequestParam(ctx, "basketId"))
	return util.SerializeResponseOK(NewBasket, basket, err)
}

func (bs *BasketService) CreateBasket(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := BasketInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	created, err := bs.service.CreateBasket(util.Username(ctx), input.ToData())
	return util.SerializeResponseOK(NewBasket, created, err)
}

// UpdateBasketInfo overwrites name and ingredients unconditionally; the
// merge path below is only for incremental additions.
func (bs *BasketService) UpdateBasketInfo(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := BasketInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	updated, err := bs.service.UpdateInfo(util.Username(ctx), util.RequestParam(ctx, "basketId"), input.ToData())
	return util.SerializeResponseOK(NewBasket, updated, err)
}

func (bs *BasketService) AddIngredient(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := IngredientLine{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	updated, err := bs.service.AddIngredient(util.Username(ctx), util.RequestParam(ctx, "basketId"), input.Name, input.Quantity, input.Unit)
	return util.SerializeResponseOK(NewBasket, updated, err)
}

func (bs *BasketService) DeleteBasket(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := bs.service.DeleteBasket(util.Username(ctx), util.RequestParam(ctx, "basketId"))
	return util.SerializeResponseNoContent(err)
}
