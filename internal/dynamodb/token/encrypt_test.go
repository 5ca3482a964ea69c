package token_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"calfern.me/pantry/internal/dynamodb/token"
)

func TestEncryptionMarshaler(t *testing.T) {
	marshaler := token.NewGCM()
	accountId := "nobody@example.com"
	lastKey := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "nobody@example.com:PantryItem"},
		"SK": &types.AttributeValueMemberS{Value: "abc-123"},
	}

	t.Run("lastKey==Unmarshal(Marshal(lastKey))", func(t *testing.T) {
		sealed, err := marshaler.Marshal(accountId, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", err)
		}
		otherKey, err := marshaler.Unmarshal(accountId, sealed)
		if err != nil {
			t.Fatalf("Failed to unmarshal token: %s", err)
		}
		for field, value := range lastKey {
			other, ok := otherKey[field]
			if !ok {
				t.Fatalf("otherKey does not contain %s: %v", field, otherKey)
			}
			svalue, ok := other.(*types.AttributeValueMemberS)
			if !ok {
				t.Fatalf("otherKey %s is not an S type", field)
			}
			if svalue.Value != value.(*types.AttributeValueMemberS).Value {
				t.Errorf("otherKey %s is %s", field, svalue.Value)
			}
		}
	})

	t.Run("EmptyKeyMarshalsToNil", func(t *testing.T) {
		var emptyKey map[string]types.AttributeValue
		sealed, err := marshaler.Marshal(accountId, emptyKey)
		if err != nil {
			t.Fatalf("Threw an error on marshal: %s", err)
		}
		if sealed != nil {
			t.Fatalf("Expected a nil token, got %s", sealed)
		}
	})

	t.Run("EmptyTokenUnmarshalsToNil", func(t *testing.T) {
		otherKey, err := marshaler.Unmarshal(accountId, nil)
		if err != nil {
			t.Fatalf("Threw an error on unmarshal: %s", err)
		}
		if otherKey != nil {
			t.Fatalf("Expected a nil key, got %v", otherKey)
		}
	})

	t.Run("AccountA!=AccountB", func(t *testing.T) {
		sealed, err := marshaler.Marshal(accountId, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", err)
		}
		otherKey, err := marshaler.Unmarshal("somebody@example.com", sealed)
		if err == nil {
			t.Fatalf("Expected an err but received, %v", otherKey)
		}
		if otherKey != nil {
			t.Fatalf("Should not have decrypted %v", otherKey)
		}
	})
}
