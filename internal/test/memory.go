package test

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"calfern.me/pantry/internal/data"
	recipeData "calfern.me/pantry/internal/dynamodb/recipes"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/notifications"
)

// MemoryRepository backs unit tests with an in-memory data.Repository.
// Rows are grouped per account and listed in insertion order. The hooks
// mirror the DynamoDB service hooks: OnCreate builds the stored row,
// OnUpdate applies a partial input to an existing one.
type MemoryRepository[T interface{}, I interface{}] struct {
	Name     string
	OnCreate func(I, time.Time, string, string) T
	OnUpdate func(I, *T, time.Time)

	mutex sync.Mutex
	rows  map[string]map[string]T
	order map[string][]string
}

func (mr *MemoryRepository[T, I]) partitionKey(accountId string) string {
	return fmt.Sprintf("%s:%s", accountId, mr.Name)
}

func (mr *MemoryRepository[T, I]) partition(accountId string) map[string]T {
	if mr.rows == nil {
		mr.rows = make(map[string]map[string]T)
		mr.order = make(map[string][]string)
	}
	if _, ok := mr.rows[accountId]; !ok {
		mr.rows[accountId] = make(map[string]T)
	}
	return mr.rows[accountId]
}

func (mr *MemoryRepository[T, I]) Get(accountId string, itemId string) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	row, ok := mr.partition(accountId)[itemId]
	if !ok {
		var empty T
		return empty, exceptions.NotFound(strings.ToLower(mr.Name), itemId)
	}
	return row, nil
}

func (mr *MemoryRepository[T, I]) Create(accountId string, input I) (T, error) {
	gid, err := uuid.NewUUID()
	if err != nil {
		var empty T
		return empty, err
	}
	return mr.CreateWithItemId(accountId, input, gid.String())
}

func (mr *MemoryRepository[T, I]) CreateWithItemId(accountId string, input I, itemId string) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	rows := mr.partition(accountId)
	if _, ok := rows[itemId]; ok {
		var empty T
		return empty, exceptions.Conflict(strings.ToLower(mr.Name), itemId)
	}
	row := mr.OnCreate(input, time.Now(), mr.partitionKey(accountId), itemId)
	rows[itemId] = row
	mr.order[accountId] = append(mr.order[accountId], itemId)
	return row, nil
}

func (mr *MemoryRepository[T, I]) Update(accountId string, itemId string, input I) (T, error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	rows := mr.partition(accountId)
	row, ok := rows[itemId]
	if !ok {
		var empty T
		return empty, exceptions.NotFound(strings.ToLower(mr.Name), itemId)
	}
	mr.OnUpdate(input, &row, time.Now())
	rows[itemId] = row
	return row, nil
}

func (mr *MemoryRepository[T, I]) List(accountId string, params data.QueryParams) (data.QueryResults[T], error) {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	rows := mr.partition(accountId)
	items := make([]T, 0, len(rows))
	for _, itemId := range mr.order[accountId] {
		if row, ok := rows[itemId]; ok {
			items = append(items, row)
		}
	}
	return data.QueryResults[T]{Items: items}, nil
}

func (mr *MemoryRepository[T, I]) Delete(accountId string, itemId string) error {
	mr.mutex.Lock()
	defer mr.mutex.Unlock()
	delete(mr.partition(accountId), itemId)
	return nil
}

type MemoryPantryItemService struct {
	*MemoryRepository[data.PantryItemDTO, data.PantryItemInputDTO]
}

func NewMemoryPantryItemService() data.PantryItemDataService {
	return &MemoryPantryItemService{
		MemoryRepository: &MemoryRepository[data.PantryItemDTO, data.PantryItemInputDTO]{
			Name: "PantryItem",
			OnCreate: func(piid data.PantryItemInputDTO, createTime time.Time, pk string, sk string) data.PantryItemDTO {
				item := data.PantryItemDTO{
					PK:             pk,
					SK:             sk,
					Name:           *piid.Name,
					Quantity:       *piid.Quantity,
					Unit:           *piid.Unit,
					ExpirationDate: piid.ExpirationDate,
					CreateTime:     createTime,
					UpdateTime:     createTime,
				}
				if piid.RemindDate != nil {
					item.RemindDate = *piid.RemindDate
				}
				if piid.InPantry != nil {
					item.InPantry = *piid.InPantry
				}
				return item
			},
			OnUpdate: func(piid data.PantryItemInputDTO, item *data.PantryItemDTO, updateTime time.Time) {
				if piid.Name != nil {
					item.Name = *piid.Name
				}
				if piid.Quantity != nil {
					item.Quantity = *piid.Quantity
				}
				if piid.Unit != nil {
					item.Unit = *piid.Unit
				}
				if piid.RemindDate != nil {
					item.RemindDate = *piid.RemindDate
					item.ExpirationDate = piid.ExpirationDate
				}
				if piid.InPantry != nil {
					item.InPantry = *piid.InPantry
				}
				item.UpdateTime = updateTime
			},
		},
	}
}

func (ms *MemoryPantryItemService) ListByStatus(accountId string, inPantry bool, params data.QueryParams) (data.QueryResults[data.PantryItemDTO], error) {
	results, err := ms.List(accountId, params)
	if err != nil {
		return results, err
	}
	var filtered []data.PantryItemDTO
	for _, item := range results.Items {
		if item.InPantry == inPantry {
			filtered = append(filtered, item)
		}
	}
	return data.QueryResults[data.PantryItemDTO]{Items: filtered}, nil
}

func NewMemoryReminderService() data.ReminderDataService {
	return &MemoryRepository[data.ReminderDTO, data.ReminderInputDTO]{
		Name: "Reminder",
		OnCreate: func(riid data.ReminderInputDTO, createTime time.Time, pk string, sk string) data.ReminderDTO {
			reminder := data.ReminderDTO{
				PK:         pk,
				SK:         sk,
				ItemName:   *riid.ItemName,
				Date:       *riid.Date,
				CreateTime: createTime,
				UpdateTime: createTime,
			}
			if riid.Dismissed != nil {
				reminder.Dismissed = *riid.Dismissed
			}
			return reminder
		},
		OnUpdate: func(riid data.ReminderInputDTO, reminder *data.ReminderDTO, updateTime time.Time) {
			if riid.ItemName != nil {
				reminder.ItemName = *riid.ItemName
			}
			if riid.Date != nil {
				reminder.Date = *riid.Date
			}
			if riid.Dismissed != nil {
				reminder.Dismissed = *riid.Dismissed
			}
			reminder.UpdateTime = updateTime
		},
	}
}

func NewMemoryBasketService() data.BasketDataService {
	return &MemoryRepository[data.BasketDTO, data.BasketInputDTO]{
		Name: "Basket",
		OnCreate: func(biid data.BasketInputDTO, createTime time.Time, pk string, sk string) data.BasketDTO {
			basket := data.BasketDTO{
				PK:         pk,
				SK:         sk,
				Name:       *biid.Name,
				CreateTime: createTime,
				UpdateTime: createTime,
			}
			if biid.Ingredients != nil {
				basket.Ingredients = *biid.Ingredients
			}
			return basket
		},
		OnUpdate: func(biid data.BasketInputDTO, basket *data.BasketDTO, updateTime time.Time) {
			if biid.Name != nil {
				basket.Name = *biid.Name
			}
			if biid.Ingredients != nil {
				basket.Ingredients = *biid.Ingredients
			}
			basket.UpdateTime = updateTime
		},
	}
}

type MemoryRecipeService struct {
	repo *MemoryRepository[data.RecipeDTO, data.RecipeInputDTO]
}

func NewMemoryRecipeService() data.RecipeDataService {
	return &MemoryRecipeService{
		repo: &MemoryRepository[data.RecipeDTO, data.RecipeInputDTO]{
			Name: "Recipe",
			OnCreate: func(riid data.RecipeInputDTO, createTime time.Time, pk string, sk string) data.RecipeDTO {
				recipe := data.RecipeDTO{
					PK:         pk,
					SK:         sk,
					Name:       *riid.Name,
					Author:     *riid.Author,
					CreateTime: createTime,
					UpdateTime: createTime,
				}
				if riid.Instructions != nil {
					recipe.Instructions = *riid.Instructions
				}
				if riid.CookTimeMinutes != nil {
					recipe.CookTimeMinutes = *riid.CookTimeMinutes
				}
				if riid.Ingredients != nil {
					recipe.Ingredients = *riid.Ingredients
				}
				return recipe
			},
			OnUpdate: func(riid data.RecipeInputDTO, recipe *data.RecipeDTO, updateTime time.Time) {
				if riid.Name != nil {
					recipe.Name = *riid.Name
				}
				if riid.Instructions != nil {
					recipe.Instructions = *riid.Instructions
				}
				if riid.CookTimeMinutes != nil {
					recipe.CookTimeMinutes = *riid.CookTimeMinutes
				}
				if riid.Ingredients != nil {
					recipe.Ingredients = *riid.Ingredients
				}
				recipe.UpdateTime = updateTime
			},
		},
	}
}

func (ms *MemoryRecipeService) GetRecipe(recipeId string) (data.RecipeDTO, error) {
	return ms.repo.Get(recipeData.CatalogPartition, recipeId)
}

func (ms *MemoryRecipeService) CreateRecipe(author string, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	input.Author = &author
	return ms.repo.Create(recipeData.CatalogPartition, input)
}

func (ms *MemoryRecipeService) UpdateRecipe(recipeId string, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	return ms.repo.Update(recipeData.CatalogPartition, recipeId, input)
}

func (ms *MemoryRecipeService) ListRecipes(params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	return ms.repo.List(recipeData.CatalogPartition, params)
}

func (ms *MemoryRecipeService) DeleteRecipe(recipeId string) error {
	return ms.repo.Delete(recipeData.CatalogPartition, recipeId)
}

func NewMemorySubscriptionService() data.SubscriptionDataService {
	return &MemoryRepository[data.SubscriptionDTO, data.SubscriptionInputDTO]{
		Name: "Subscription",
		OnCreate: func(siid data.SubscriptionInputDTO, createTime time.Time, pk string, sk string) data.SubscriptionDTO {
			subscription := data.SubscriptionDTO{
				PK:         pk,
				SK:         sk,
				Endpoint:   *siid.Endpoint,
				Protocol:   *siid.Protocol,
				CreateTime: createTime,
				UpdateTime: createTime,
			}
			if siid.SubscriberArn != nil {
				subscription.SubscriberArn = *siid.SubscriberArn
			}
			return subscription
		},
		OnUpdate: func(siid data.SubscriptionInputDTO, subscription *data.SubscriptionDTO, updateTime time.Time) {
			if siid.Endpoint != nil {
				subscription.Endpoint = *siid.Endpoint
			}
			if siid.Protocol != nil {
				subscription.Protocol = *siid.Protocol
			}
			if siid.SubscriberArn != nil {
				subscription.SubscriberArn = *siid.SubscriberArn
			}
			subscription.UpdateTime = updateTime
		},
	}
}

// LocalNotificationService records publishes and subscriptions so tests
// can assert on them without an SNS topic.
type LocalNotificationService struct {
	Subscribed   []notifications.SubscribeInput
	Unsubscribed []string
	Published    []notifications.PublishInput
}

func (ln *LocalNotificationService) Subscribe(input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	ln.Subscribed = append(ln.Subscribed, input)
	return &notifications.SubscribeOutput{
		SubscriberId: fmt.Sprintf("arn:local:%d", len(ln.Subscribed)),
	}, nil
}

func (ln *LocalNotificationService) Unsubscribe(subscriberId string) error {
	ln.Unsubscribed = append(ln.Unsubscribed, subscriberId)
	return nil
}

func (ln *LocalNotificationService) Publish(input notifications.PublishInput) error {
	ln.Published = append(ln.Published, input)
	return nil
}
