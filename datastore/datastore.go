/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/schnellert/nest-firestore-orm/storagemodels"
)

// DataStore is the generic repository contract for documents of type T.
// Keys are document IDs; for types mapped to subcollection path templates
// the key is the slash-separated sequence of parent IDs followed by the
// document ID (for example "user-1/order-9" for "users/{UserID}/orders").
type DataStore[T any] interface {
	// GetOne retrieves a single document. It returns (nil, nil) when the
	// document does not exist.
	GetOne(ctx context.Context, key string) (*T, error)

	// Put creates or replaces the document addressed by the entity's ID field.
	Put(ctx context.Context, entity T) error

	// Create stores a new document, generating an ID when the entity's ID
	// field is empty, and returns the document's key.
	Create(ctx context.Context, entity T) (string, error)

	// Update applies a field-mask update to an existing document.
	Update(ctx context.Context, key string, updates map[string]interface{}) error

	// Query returns all documents matching the given parameters.
	Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)

	// Stream opens a snapshot listener for the given parameters and delivers
	// document changes until ctx is canceled. The returned channel is closed
	// when the listener stops.
	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	// Delete removes a document.
	Delete(ctx context.Context, key string) error

	// RunTransaction executes fn atomically. All reads and writes issued
	// through tx belong to the same transaction; retry semantics are owned
	// by the underlying client.
	RunTransaction(ctx context.Context, fn func(tx Tx[T]) error) error
}

// Tx exposes the datastore operations available inside a transaction.
// The transaction's context is captured at creation time.
type Tx[T any] interface {
	Get(key string) (*T, error)
	Put(entity T) error
	Update(key string, updates map[string]interface{}) error
	Delete(key string) error
}
