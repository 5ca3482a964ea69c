package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler converts a DynamoDB last-evaluated key into an opaque
// pagination token and back. Tokens are bound to the account they were
// issued for.
type TokenMarshaler interface {
	Marshal(accountId string, lastKey map[string]types.AttributeValue) ([]byte, error)

	Unmarshal(accountId string, token []byte) (map[string]types.AttributeValue, error)
}
