package main

import (
	"context"
	"fmt"
	"os"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	reminderData "calfern.me/pantry/internal/dynamodb/reminders"
	"calfern.me/pantry/internal/dynamodb/token"
	"calfern.me/pantry/internal/events"
	"calfern.me/pantry/internal/sns/services"
)

func HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	tableName := os.Getenv("TABLE_NAME")
	topicArn := os.Getenv("TOPIC_ARN")
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}

	client := dynamodb.NewFromConfig(cfg)
	snsClient := sns.NewFromConfig(cfg)
	marshaler := token.NewGCM()

	handlers := []events.EventFilter{
		events.DefaultSweepHandler(reminderData.NewReminderService(tableName, *client, marshaler)),
		events.DefaultNotifyHandler(&services.NotificationSNSService{
			Sns:      *snsClient,
			TopicArn: topicArn,
		}),
	}

	for _, record := range event.Records {
		for _, handler := range handlers {
			if handler.Filter(record) {
				if err := handler.Apply(record); err != nil {
					fmt.Printf("ERROR: failed to handle %s: %v\n", err.Error(), record)
					break
				}
			}
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
