package items

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/pantry"
	"calfern.me/pantry/internal/routes"
	"calfern.me/pantry/internal/routes/util"
)

type ItemService struct {
	engine  *pantry.Engine
	data    data.PantryItemDataService
	convert func(data.PantryItemDTO) Item
}

func NewRoute(engine *pantry.Engine, itemData data.PantryItemDataService) routes.Service {
	return &ItemService{
		engine:  engine,
		data:    itemData,
		convert: NewItemConverter(engine.Dates),
	}
}

func (is *ItemService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/items":                util.AuthorizedRoute(is.ListItems),
		"GET:/items/:itemId":        util.AuthorizedRoute(is.GetItem),
		"POST:/items":               util.AuthorizedRoute(is.CreateItem),
		"PUT:/items/:itemId":        util.AuthorizedRoute(is.UpdateItemInfo),
		"PUT:/items/:itemId/status": util.AuthorizedRoute(is.UpdateItemStatus),
		"DELETE:/items/:itemId":     util.AuthorizedRoute(is.DeleteItem),
	}
}

// ListItems returns the owner's items newest first, optionally narrowed
// by the explicit in-pantry flag (?inPantry=true|false).
func (is *ItemService) ListItems(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.ParseQuery(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	var results data.QueryResults[data.PantryItemDTO]
	if status, ok := event.QueryStringParameters["inPantry"]; ok {
		inPantry, err := strconv.ParseBool(status)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("The inPantry parameter was not a boolean type.")
		}
		results, err = is.data.ListByStatus(util.Username(ctx), inPantry, params)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
	} else {
		results, err = is.data.List(util.Username(ctx), params)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{}, err
		}
	}
	sort.SliceStable(results.Items, func(i, j int) bool {
		return results.Items[i].CreateTime.After(results.Items[j].CreateTime)
	})
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(is.convert), results, nil)
}

func (is *ItemService) GetItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	item, err := is.data.Get(util.Username(ctx), util.RequestParam(ctx, "itemId"))
	return util.SerializeResponseOK(is.convert, item, err)
}

func (is *ItemService) CreateItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ItemInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	created, err := is.engine.AddItem(util.Username(ctx), input.ToEngine())
	return util.SerializeResponseOK(is.convert, created, err)
}

func (is *ItemService) UpdateItemInfo(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ItemInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	updated, err := is.engine.UpdateItemInfo(util.Username(ctx), util.RequestParam(ctx, "itemId"), input.ToEngine())
	return util.SerializeResponseOK(is.convert, updated, err)
}

func (is *ItemService) UpdateItemStatus(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := StatusInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if input.InPantry == nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput("The inPantry field is required.")
	}
	updated, err := is.engine.UpdateItemStatus(util.Username(ctx), util.RequestParam(ctx, "itemId"), *input.InPantry)
	return util.SerializeResponseOK(is.convert, updated, err)
}

func (is *ItemService) DeleteItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := is.engine.DeleteItem(util.Username(ctx), util.RequestParam(ctx, "itemId"))
	return util.SerializeResponseNoContent(err)
}
