// Package id generates short random identifiers for upload batches.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// PrefixBatch prefixes upload batch identifiers
	PrefixBatch = "batch"
)

// Generate creates a random short ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return id, nil
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// NewBatchID returns a fresh batch identifier.
func NewBatchID() (string, error) {
	return GenerateWithPrefix(PrefixBatch, DefaultLength)
}

// IsValid reports whether s looks like an ID produced by this package.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	body := s
	if idx := strings.LastIndexByte(s, '_'); idx >= 0 {
		body = s[idx+1:]
	}
	if body == "" {
		return false
	}
	for _, r := range body {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
