// Package kv is a namespaced key/value store. Each namespace plays the role
// of one browser's local storage; the shared collections live in AppNamespace.
package kv

import (
	"context"
	"errors"
	"strings"
	"time"
)

// AppNamespace holds the collections shared by every visitor.
const AppNamespace = "app"

// ErrEmptyKey is returned when a namespace or key is blank.
var ErrEmptyKey = errors.New("kv: namespace and key are required")

// Store persists opaque values under (namespace, key).
type Store interface {
	// Get returns the stored value and true, or nil and false when the key is absent.
	Get(ctx context.Context, ns, key string) ([]byte, bool, error)
	// Set inserts or replaces the value.
	Set(ctx context.Context, ns, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, ns, key string) error
	// Keys lists the keys of a namespace in ascending order.
	Keys(ctx context.Context, ns string) ([]string, error)
	// Prune deletes every key outside AppNamespace not written since before.
	Prune(ctx context.Context, before time.Time) (int64, error)
}

func checkKey(ns, key string) error {
	if strings.TrimSpace(ns) == "" || strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
