package routes

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

var paramNamePattern = regexp.MustCompile(":[^/]+")

type compiledRoute struct {
	Method     string
	Path       string
	Route      Route
	Matcher    *regexp.Regexp
	ParamNames []string
}

// compileRoute turns "GET:/items/:itemId" path templates into anchored
// matchers up front, once, at router construction.
func compileRoute(method string, path string, route Route) compiledRoute {
	var paramNames []string
	pattern := paramNamePattern.ReplaceAllStringFunc(path, func(found string) string {
		paramNames = append(paramNames, found[1:])
		return "([^/]+)"
	})
	return compiledRoute{
		Method:     method,
		Path:       path,
		Route:      route,
		Matcher:    regexp.MustCompile("^" + pattern + "$"),
		ParamNames: paramNames,
	}
}

func (cr *compiledRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	values := cr.Matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.ParamNames))
	for i, name := range cr.ParamNames {
		params[name] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []compiledRoute
}

func NewRouter(services ...Service) *Router {
	var routes []compiledRoute
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			routes = append(routes, compileRoute(parts[0], parts[1], route))
		}
	}
	return &Router{
		Routes: routes,
		Filters: []filters.RequestFilter{
			filters.DefaultCorsFilter(),
			filters.DefaultAuthorizationFilter(),
		},
	}
}

func translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := 500
	if re, ok := err.(exceptions.RequestError); ok {
		statusCode = re.ToServiceError().StatusCode
	}
	if se, ok := err.(*exceptions.ServiceError); ok {
		statusCode = se.StatusCode
	}
	body := "{\"message\": \"" + err.Error() + "\"}"
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, context.WithValue(*filterContext.Context, "Params", params))
			if err != nil {
				return translateError(err)
			}
			return resp
		}
	}
	return translateError(exceptions.NotFound("route", event.RawPath))
}
