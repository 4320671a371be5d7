package auth

import (
	"crypto/subtle"
	"errors"
)

const HeaderAPIKey = "x-api-key"

var ErrEmptyKey = errors.New("shared api key must not be empty")

// KeyVerifier는 호출자가 제시한 키를 게이트웨이 공유 키와 비교합니다.
type KeyVerifier struct {
	key []byte
}

func NewKeyVerifier(sharedKey string) (*KeyVerifier, error) {
	if sharedKey == "" {
		return nil, ErrEmptyKey
	}
	return &KeyVerifier{key: []byte(sharedKey)}, nil
}

// Verify reports whether presented equals the shared key, in constant time.
func (v *KeyVerifier) Verify(presented string) bool {
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), v.key) == 1
}
