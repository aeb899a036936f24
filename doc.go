/*
Package fsorm provides a thin, type-safe object-document mapper over the
Cloud Firestore Go client, intended for wiring into dependency-injection
style applications.

The library has three pieces:
  - Per-type collection metadata registered in the registry package
    (collection path templates and the struct field that carries the
    document ID).
  - A generic DataStore[T] repository offering CRUD, queries, snapshot
    streaming and transaction helpers, implemented against Firestore in
    datastore/fstore.
  - A fluent query builder wrapping the client's Where/OrderBy/Limit
    chain before materializing results.

Every operation is a delegation to the underlying Firestore client;
consistency, retries and transaction semantics are owned by the client
library, not by this code.

Basic Usage:

	// Register collection metadata for the type
	registry.RegisterCollectionMap[User](registry.CollectionMap{Path: "users"})

	// Create a typed datastore
	userStore, _ := fstore.NewFirestoreDataStore[User](ctx, "my-project", "(default)")

	// Register it in a storage manager for DI wiring
	mts := fsorm.NewMultiTypeStorage()
	fsorm.RegisterDataStore(mts, "users", userStore)

	// Retrieve and use the datastore
	store, _ := fsorm.GetDataStore[User](mts, "users")
	err := store.Put(ctx, User{ID: "123", Name: "John"})

For more information, see the documentation at https://github.com/schnellert/nest-firestore-orm
*/
package fsorm
