/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package registry

import (
	"reflect"
	"strings"
	"sync"
)

// CollectionMap describes how a Go type maps onto a Firestore collection.
// It is the runtime equivalent of annotating an entity class with a
// collection name.
type CollectionMap struct {
	// Path is the collection path template. It is either a plain
	// collection name ("users") or a template with field macros for
	// subcollections ("users/{UserID}/orders").
	Path string

	// IDField names the struct field that carries the document ID.
	// The field should be tagged `firestore:"-"` so it is never stored
	// as a document field. Empty means "ID".
	IDField string
}

// ResolveIDField returns the configured ID field name, or "ID" when unset.
func (m CollectionMap) ResolveIDField() string {
	if m.IDField == "" {
		return "ID"
	}
	return m.IDField
}

// CollectionName returns the final collection segment of the path
// template, which identifies the collection for collection-group queries.
func (m CollectionMap) CollectionName() string {
	segments := strings.Split(m.Path, "/")
	return segments[len(segments)-1]
}

var (
	collectionMapRegistry = make(map[reflect.Type]CollectionMap)
	mu                    sync.RWMutex
)

// RegisterCollectionMap associates a Go type T with a Firestore collection map.
func RegisterCollectionMap[T any](m CollectionMap) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.Lock()
	defer mu.Unlock()
	collectionMapRegistry[t] = m
}

// GetCollectionMap retrieves the collection map for type T, if any.
func GetCollectionMap[T any]() (CollectionMap, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	m, ok := collectionMapRegistry[t]
	return m, ok
}
