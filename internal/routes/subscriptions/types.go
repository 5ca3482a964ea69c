package subscriptions

import (
	"calfern.me/pantry/internal/data"
)

type SubscriptionInput struct {
	Endpoint *string `json:"endpoint"`
	Protocol *string `json:"protocol"`
}

type Subscription struct {
	Id       string `json:"subscriberId"`
	Endpoint string `json:"endpoint"`
	Protocol string `json:"protocol"`
}

func NewSubscription(dto data.SubscriptionDTO) Subscription {
	return Subscription{
		Id:       dto.SK,
		Endpoint: dto.Endpoint,
		Protocol: dto.Protocol,
	}
}
