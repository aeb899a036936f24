/*
Package datastore defines the core interfaces for the Firestore ORM's data
persistence layer.

The main interface is DataStore[T], which provides generic CRUD, query,
snapshot streaming and transaction operations for any document type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Create(ctx context.Context, entity T) (string, error)
	    Update(ctx context.Context, key string, updates map[string]interface{}) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	    Delete(ctx context.Context, key string) error
	    RunTransaction(ctx context.Context, fn func(tx Tx[T]) error) error
	}

Implementations:
  - fstore: Cloud Firestore implementation with fluent query building
  - mock: In-memory mock implementation for testing

The package uses Go generics to ensure type safety at compile time while
keeping all consistency and retry semantics in the underlying client.
*/
package datastore
