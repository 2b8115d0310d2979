package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Keyer derives cache keys from structured inputs.
//
// Contract:
// - Determinism: equal inputs produce equal keys regardless of map order.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key derives a key for input within namespace.
	Key(namespace string, input any) (string, error)
}

// DefaultKeyer hashes the JSON encoding of the input with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key returns cache:<namespace>:<hash>, where hash is the first 16 hex
// characters of SHA-256 over the input's JSON encoding. Map keys are encoded
// in sorted order, which makes the encoding canonical.
func (k *DefaultKeyer) Key(namespace string, input any) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("cache: failed to encode key input: %w", err)
	}
	sum := sha256.Sum256(data)
	return "cache:" + namespace + ":" + hex.EncodeToString(sum[:8]), nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
