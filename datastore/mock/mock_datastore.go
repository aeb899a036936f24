/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

// Package mock provides mock implementations of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/schnellert/nest-firestore-orm/datastore"
	"github.com/schnellert/nest-firestore-orm/errors"
	"github.com/schnellert/nest-firestore-orm/storagemodels"
)

// DataStore is a mock implementation of datastore.DataStore[T] for testing
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	nextID      int
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	streamFunc  func(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	getKeyFunc  func(entity T) string
	putError    error
	createError error
	deleteError error
	updateError error
	txError     error
}

var _ datastore.DataStore[struct{ ID string }] = (*DataStore[struct{ ID string }])(nil)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities.
// The default reads the entity's ID field.
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithStreamFunc sets a custom stream function for testing
func (m *DataStore[T]) WithStreamFunc(f func(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]) *DataStore[T] {
	m.streamFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithCreateError makes Create operations return an error
func (m *DataStore[T]) WithCreateError(err error) *DataStore[T] {
	m.createError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// WithUpdateError makes Update operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// WithTxError makes RunTransaction return an error before calling fn
func (m *DataStore[T]) WithTxError(err error) *DataStore[T] {
	m.txError = err
	return m
}

// extractKey derives the map key for an entity.
func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}
	f := v.FieldByName("ID")
	if !f.IsValid() || f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}

// GetOne retrieves an entity by key.
// It returns (nil, nil) when the entity does not exist.
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}
	return nil, nil
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.data[key] = entity
	return nil
}

// Create stores a new entity, generating a key when the entity has none.
func (m *DataStore[T]) Create(ctx context.Context, entity T) (string, error) {
	if m.createError != nil {
		return "", m.createError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.extractKey(entity)
	if key == "" {
		m.nextID++
		key = fmt.Sprintf("mock-%d", m.nextID)
	} else if _, exists := m.data[key]; exists {
		var zero T
		return "", errors.NewAlreadyExistsError(fmt.Sprintf("%T", zero), key)
	}

	m.data[key] = entity
	return key, nil
}

// Update verifies the entity exists. The mock stores whole entities, so
// field-level updates are not applied.
func (m *DataStore[T]) Update(ctx context.Context, key string, updates map[string]interface{}) error {
	if m.updateError != nil {
		return m.updateError
	}
	if len(updates) == 0 {
		return errors.NewValidationError("", "no updates provided")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}
	return nil
}

// Query executes a query
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	// Default implementation returns all data
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]T, 0, len(m.data))
	for _, v := range m.data {
		results = append(results, v)
	}

	return results, nil
}

// Stream returns a channel of results
func (m *DataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, params, opts...)
	}

	// Default implementation streams all data as added changes
	resultChan := make(chan storagemodels.StreamResult[T], 10)

	go func() {
		defer close(resultChan)

		m.mu.RLock()
		defer m.mu.RUnlock()

		index := int64(0)
		for _, v := range m.data {
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult[T]{
				Item: v,
				Kind: storagemodels.ChangeAdded,
				Meta: storagemodels.StreamMeta{
					Index:          index,
					SnapshotNumber: 1,
				},
			}:
				index++
			}
		}
	}()

	return resultChan
}

// Delete removes an entity by key. Deleting a missing entity is not an
// error, matching the Firestore implementation.
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// RunTransaction executes fn against the store. The mock applies writes
// directly; atomicity and retries are not simulated.
func (m *DataStore[T]) RunTransaction(ctx context.Context, fn func(tx datastore.Tx[T]) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(&mockTx[T]{ctx: ctx, store: m})
}

// mockTx delegates transaction operations to the mock store.
type mockTx[T any] struct {
	ctx   context.Context
	store *DataStore[T]
}

func (t *mockTx[T]) Get(key string) (*T, error) {
	return t.store.GetOne(t.ctx, key)
}

func (t *mockTx[T]) Put(entity T) error {
	return t.store.Put(t.ctx, entity)
}

func (t *mockTx[T]) Update(key string, updates map[string]interface{}) error {
	return t.store.Update(t.ctx, key, updates)
}

func (t *mockTx[T]) Delete(key string) error {
	return t.store.Delete(t.ctx, key)
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}
