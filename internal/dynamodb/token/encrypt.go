package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"calfern.me/pantry/internal/data"
)

type EncryptMode func(cipher.Block) (cipher.AEAD, error)

// EncryptionTokenMarshaler seals pagination tokens with an AEAD keyed off
// the account id, so a token handed to one account is useless to another.
type EncryptionTokenMarshaler struct {
	Mode EncryptMode
}

func NewGCM() *EncryptionTokenMarshaler {
	return &EncryptionTokenMarshaler{
		Mode: cipher.NewGCM,
	}
}

func _serializeLastKey(lastKey map[string]types.AttributeValue) ([]byte, error) {
	if len(lastKey) == 0 {
		return nil, nil
	}
	token := make(data.NextToken, len(lastKey))
	for field, value := range lastKey {
		inner := make(map[string]string, 1)
		switch av := value.(type) {
		case *types.AttributeValueMemberS:
			inner["S"] = av.Value
		case *types.AttributeValueMemberN:
			inner["N"] = av.Value
		case *types.AttributeValueMemberB:
			inner["B"] = string(av.Value)
		}
		token[field] = inner
	}
	return json.Marshal(token)
}

func _deserializeLastKey(serialized []byte) (map[string]types.AttributeValue, error) {
	if len(serialized) == 0 {
		return nil, nil
	}
	var token data.NextToken
	if err := json.Unmarshal(serialized, &token); err != nil {
		return nil, err
	}
	lastKey := make(map[string]types.AttributeValue, len(token))
	for field, inner := range token {
		if sv, ok := inner["S"]; ok {
			lastKey[field] = &types.AttributeValueMemberS{Value: sv}
		}
		if nv, ok := inner["N"]; ok {
			lastKey[field] = &types.AttributeValueMemberN{Value: nv}
		}
		if bv, ok := inner["B"]; ok {
			lastKey[field] = &types.AttributeValueMemberB{Value: []byte(bv)}
		}
	}
	return lastKey, nil
}

func _accountCipher(em *EncryptionTokenMarshaler, accountId string) (cipher.AEAD, error) {
	hash := sha256.Sum256([]byte(accountId))
	block, err := aes.NewCipher(hash[:])
	if err != nil {
		return nil, err
	}
	return em.Mode(block)
}

func (em *EncryptionTokenMarshaler) Marshal(accountId string, lastKey map[string]types.AttributeValue) ([]byte, error) {
	serialized, err := _serializeLastKey(lastKey)
	if err != nil || serialized == nil {
		return nil, err
	}
	aead, err := _accountCipher(em, accountId)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	payload := map[string]string{
		"ciphertext": hex.EncodeToString(aead.Seal(nil, nonce, serialized, nil)),
		"nonce":      hex.EncodeToString(nonce),
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []byte(base64.URLEncoding.EncodeToString(encoded)), nil
}

func (em *EncryptionTokenMarshaler) Unmarshal(accountId string, token []byte) (map[string]types.AttributeValue, error) {
	if len(token) == 0 {
		return nil, nil
	}
	decoded := make([]byte, base64.URLEncoding.DecodedLen(len(token)))
	n, err := base64.URLEncoding.Decode(decoded, token)
	if err != nil {
		return nil, err
	}
	var payload map[string]string
	if err := json.Unmarshal(decoded[:n], &payload); err != nil {
		return nil, err
	}
	aead, err := _accountCipher(em, accountId)
	if err != nil {
		return nil, err
	}
	ciphertext, _ := hex.DecodeString(payload["ciphertext"])
	nonce, _ := hex.DecodeString(payload["nonce"])
	serialized, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}
	return _deserializeLastKey(serialized)
}
