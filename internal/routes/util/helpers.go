package util

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/routes"
)

// AuthorizedRoute resolves the caller identity from the gateway JWT
// claims and threads it through the request context.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		authorizer := event.RequestContext.Authorizer
		if authorizer != nil && authorizer.JWT != nil {
			if username, ok := authorizer.JWT.Claims["username"]; ok {
				return route(event, context.WithValue(ctx, "Username", username))
			}
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.InternalServer("Unexpected internal error")
	}
}

func Username(ctx context.Context) string {
	if username, ok := ctx.Value("Username").(string); ok {
		return username
	}
	return ""
}

func RequestParam(ctx context.Context, name string) string {
	if params, ok := ctx.Value("Params").(map[string]string); ok {
		return params[name]
	}
	return ""
}

func ParseQuery(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	var params data.QueryParams
	if sLimit, ok := event.QueryStringParameters["limit"]; ok {
		limit, err := strconv.Atoi(sLimit)
		if err != nil {
			return params, exceptions.InvalidInput("Limit parameter was not a number type.")
		}
		params.Limit = limit
	}
	if token, ok := event.QueryStringParameters["nextToken"]; ok {
		params.NextToken = []byte(token)
	}
	return params, nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) data.QueryResults[R] {
	if items.Items != nil {
		newItems := make([]R, len(items.Items))
		for i, rd := range items.Items {
			newItems[i] = thunk(rd)
		}
		return data.QueryResults[R]{
			Items:     newItems,
			NextToken: items.NextToken,
		}
	}
	return data.QueryResults[R]{
		Items: make([]R, 0),
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) data.QueryResults[R] {
	return func(d data.QueryResults[D]) data.QueryResults[R] {
		return ConvertQueryResults(d, thunk)
	}
}

func MapOnList[D interface{}, R interface{}](items *[]D, thunk func(D) R) *[]R {
	newItems := make([]R, 0)
	if items != nil {
		for _, item := range *items {
			newItems = append(newItems, thunk(item))
		}
	}
	return &newItems
}

// SerializeList is the common shape of owner-scoped list routes.
func SerializeList[D interface{}, I interface{}, R interface{}](repo data.Repository[D, I], thunk func(D) R, event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := ParseQuery(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	results, err := repo.List(Username(ctx), params)
	return SerializeResponseOK(ConvertQueryResultsPartial(thunk), results, err)
}
