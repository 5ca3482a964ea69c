package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	basketsEngine "calfern.me/pantry/internal/baskets"
	basketData "calfern.me/pantry/internal/dynamodb/baskets"
	itemData "calfern.me/pantry/internal/dynamodb/items"
	reminderData "calfern.me/pantry/internal/dynamodb/reminders"
	recipeData "calfern.me/pantry/internal/dynamodb/recipes"
	subscriptionData "calfern.me/pantry/internal/dynamodb/subscriptions"
	"calfern.me/pantry/internal/dynamodb/token"
	"calfern.me/pantry/internal/pantry"
	remindersEngine "calfern.me/pantry/internal/reminders"
	"calfern.me/pantry/internal/routes"
	"calfern.me/pantry/internal/routes/baskets"
	"calfern.me/pantry/internal/routes/items"
	"calfern.me/pantry/internal/routes/recipes"
	"calfern.me/pantry/internal/routes/reminders"
	"calfern.me/pantry/internal/routes/subscriptions"
	"calfern.me/pantry/internal/sns/services"
)

type App struct {
	Router routes.Router
}

func NewApp() App {
	tableName := os.Getenv("TABLE_NAME")
	topicArn := os.Getenv("TOPIC_ARN")
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		panic("Failed to load AWS config.")
	}
	dates, err := pantry.NewDateCalculator(os.Getenv("PANTRY_TIMEZONE"))
	if err != nil {
		panic(fmt.Sprintf("Failed to load the reference timezone: %s", err))
	}
	client := dynamodb.NewFromConfig(cfg)
	snsClient := sns.NewFromConfig(cfg)
	marshaler := token.NewGCM()
	itemService := itemData.NewPantryItemService(tableName, *client, marshaler)
	sync := remindersEngine.NewSynchronizer(reminderData.NewReminderService(tableName, *client, marshaler))
	engine := pantry.NewEngine(itemService, sync, dates)
	basketService := basketData.NewBasketService(tableName, *client, marshaler)
	router := routes.NewRouter(
		items.NewRoute(engine, itemService),
		reminders.NewRoute(sync, dates),
		baskets.NewRoute(basketsEngine.NewService(basketService), basketService),
		recipes.NewRoute(recipeData.NewRecipeService(tableName, *client, marshaler)),
		subscriptions.NewRoute(
			subscriptionData.NewSubscriptionService(tableName, *client, marshaler),
			&services.NotificationSNSService{
				Sns:      *snsClient,
				TopicArn: topicArn,
			},
		),
	)
	return App{
		Router: *router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp()
	lambda.Start(app.HandleRequest)
}
