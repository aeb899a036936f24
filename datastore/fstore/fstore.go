/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/schnellert/nest-firestore-orm/datastore"
	ormerrors "github.com/schnellert/nest-firestore-orm/errors"
	"github.com/schnellert/nest-firestore-orm/registry"
)

// FirestoreDataStore implements datastore.DataStore[T] by delegating every
// operation to the Cloud Firestore client. The collection path and ID field
// of T come from the registry.
type FirestoreDataStore[T any] struct {
	client *firestore.Client
}

type checkEntity struct{ ID string }

var _ datastore.DataStore[checkEntity] = (*FirestoreDataStore[checkEntity])(nil)

// NewFirestoreClient initializes a Firestore client for the given project
// and database. Credentials resolve through Application Default Credentials
// unless overridden with client options.
func NewFirestoreClient(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*firestore.Client, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

// NewFirestoreDataStore constructs a new FirestoreDataStore for type T with
// its own client.
func NewFirestoreDataStore[T any](ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*FirestoreDataStore[T], error) {
	client, err := NewFirestoreClient(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, err
	}
	return &FirestoreDataStore[T]{client: client}, nil
}

// NewFirestoreDataStoreFromClient constructs a FirestoreDataStore for type T
// sharing an existing client. Applications wiring several typed stores into
// a dependency-injection container should share one client this way.
func NewFirestoreDataStoreFromClient[T any](client *firestore.Client) *FirestoreDataStore[T] {
	return &FirestoreDataStore[T]{client: client}
}

// Client returns the underlying Firestore client.
func (d *FirestoreDataStore[T]) Client() *firestore.Client {
	return d.client
}

// Close closes the underlying client.
func (d *FirestoreDataStore[T]) Close() error {
	return d.client.Close()
}

// collectionMap resolves the registered collection map for T.
func (d *FirestoreDataStore[T]) collectionMap() (registry.CollectionMap, error) {
	m, ok := registry.GetCollectionMap[T]()
	if !ok {
		var zero T
		return registry.CollectionMap{}, fmt.Errorf("%w %T", ormerrors.ErrNoCollectionMap, zero)
	}
	return m, nil
}

// docRefForKey resolves a string key to a document reference.
func (d *FirestoreDataStore[T]) docRefForKey(key string) (*firestore.DocumentRef, registry.CollectionMap, error) {
	m, err := d.collectionMap()
	if err != nil {
		return nil, m, err
	}
	collectionPath, docID, err := expandPathFromKey(m.Path, key)
	if err != nil {
		return nil, m, err
	}
	return d.client.Collection(collectionPath).Doc(docID), m, nil
}

// docRefForEntity resolves an entity to its document reference using the
// path template macros and the ID field value.
func (d *FirestoreDataStore[T]) docRefForEntity(entity T) (*firestore.DocumentRef, registry.CollectionMap, error) {
	m, err := d.collectionMap()
	if err != nil {
		return nil, m, err
	}
	collectionPath, err := expandPathFromEntity(m.Path, entity)
	if err != nil {
		return nil, m, err
	}
	id, err := idFieldValue(entity, m.ResolveIDField())
	if err != nil {
		return nil, m, err
	}
	if id == "" {
		return nil, m, ormerrors.NewValidationError(m.ResolveIDField(), "document ID is empty")
	}
	return d.client.Collection(collectionPath).Doc(id), m, nil
}

// GetOne retrieves a single document by key.
// It returns (nil, nil) when the document does not exist.
func (d *FirestoreDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	ref, m, err := d.docRefForKey(key)
	if err != nil {
		return nil, err
	}

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return decodeSnapshot[T](snap, m.ResolveIDField())
}

// Put creates or replaces the document addressed by the entity's ID field.
func (d *FirestoreDataStore[T]) Put(ctx context.Context, entity T) error {
	ref, _, err := d.docRefForEntity(entity)
	if err != nil {
		return err
	}
	if _, err := ref.Set(ctx, entity); err != nil {
		return fmt.Errorf("put %q: %w", ref.Path, err)
	}
	return nil
}

// Create stores a new document and returns its key. When the entity's ID
// field is empty a client-generated document ID is used. Creating over an
// existing document fails with an AlreadyExists error.
func (d *FirestoreDataStore[T]) Create(ctx context.Context, entity T) (string, error) {
	m, err := d.collectionMap()
	if err != nil {
		return "", err
	}
	collectionPath, err := expandPathFromEntity(m.Path, entity)
	if err != nil {
		return "", err
	}
	col := d.client.Collection(collectionPath)

	idField := m.ResolveIDField()
	id, err := idFieldValue(entity, idField)
	if err != nil {
		return "", err
	}

	var ref *firestore.DocumentRef
	if id == "" {
		ref = col.NewDoc()
		if err := setIDField(&entity, idField, ref.ID); err != nil {
			return "", err
		}
	} else {
		ref = col.Doc(id)
	}

	if _, err := ref.Create(ctx, entity); err != nil {
		var zero T
		return "", ormerrors.FromStatus(fmt.Sprintf("%T", zero), ref.ID, err)
	}
	// The returned key resolves back through GetOne, including the macro
	// segments of subcollection templates.
	return keyFromEntity(m.Path, entity, ref.ID)
}

// Update applies a field-mask update to an existing document. Updating a
// missing document surfaces errors.ErrNotFound.
func (d *FirestoreDataStore[T]) Update(ctx context.Context, key string, updates map[string]interface{}) error {
	ref, _, err := d.docRefForKey(key)
	if err != nil {
		return err
	}
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	if _, err := ref.Update(ctx, ups); err != nil {
		var zero T
		return ormerrors.FromStatus(fmt.Sprintf("%T", zero), key, err)
	}
	return nil
}

// Delete removes a document by key. Deleting a missing document is not an
// error; that semantic belongs to the client.
func (d *FirestoreDataStore[T]) Delete(ctx context.Context, key string) error {
	ref, _, err := d.docRefForKey(key)
	if err != nil {
		return err
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
