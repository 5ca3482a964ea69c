package recipes

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	recipesEngine "calfern.me/pantry/internal/recipes"
	"calfern.me/pantry/internal/routes"
	"calfern.me/pantry/internal/routes/util"
)

type RecipeService struct {
	data data.RecipeDataService
}

func NewRoute(recipeData data.RecipeDataService) routes.Service {
	return &RecipeService{
		data: recipeData,
	}
}

func (rs *RecipeService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/recipes":              util.AuthorizedRoute(rs.ListRecipes),
		"GET:/recipes/:recipeId":    util.AuthorizedRoute(rs.GetRecipe),
		"POST:/recipes":             util.AuthorizedRoute(rs.CreateRecipe),
		"PUT:/recipes/:recipeId":    util.AuthorizedRoute(rs.UpdateRecipe),
		"DELETE:/recipes/:recipeId": util.AuthorizedRoute(rs.DeleteRecipe),
	}
}

func (rs *RecipeService) listCatalog() ([]data.RecipeDTO, error) {
	var catalog []data.RecipeDTO
	params := data.QueryParams{}
	for {
		page, err := rs.data.ListRecipes(params)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, page.Items...)
		if len(page.NextToken) == 0 {
			return catalog, nil
		}
		params.NextToken = page.NextToken
	}
}

// ListRecipes returns the shared catalog sorted by name ascending,
// narrowed by ?keyword= and ?ingredients= (comma-separated names) when
// present. The filter runs after the sort, so output keeps name order.
func (rs *RecipeService) ListRecipes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	catalog, err := rs.listCatalog()
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Name < catalog[j].Name
	})
	var ingredientNames []string
	if csv, ok := event.QueryStringParameters["ingredients"]; ok && csv != "" {
		ingredientNames = strings.Split(csv, ",")
	}
	filtered := recipesEngine.Filter(catalog, event.QueryStringParameters["keyword"], ingredientNames)
	return util.SerializeResponseOK(func(dtos []data.RecipeDTO) []Recipe {
		return *util.MapOnList(&dtos, NewRecipe)
	}, filtered, nil)
}

func (rs *RecipeService) GetRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipe, err := rs.data.GetRecipe(util.RequestParam(ctx, "recipeId"))
	return util.SerializeResponseOK(NewRecipe, recipe, err)
}

func (rs *RecipeService) CreateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := RecipeInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if err := input.Validate(); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := rs.data.CreateRecipe(util.Username(ctx), input.ToData())
	return util.SerializeResponseOK(NewRecipe, created, err)
}

func (rs *RecipeService) UpdateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := RecipeInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	if err := input.Validate(); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	updated, err := rs.data.UpdateRecipe(util.RequestParam(ctx, "recipeId"), input.ToData())
	return util.SerializeResponseOK(NewRecipe, updated, err)
}

func (rs *RecipeService) DeleteRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	err := rs.data.DeleteRecipe(util.RequestParam(ctx, "recipeId"))
	return util.SerializeResponseNoContent(err)
}
