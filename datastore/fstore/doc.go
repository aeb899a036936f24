/*
Package fstore provides the Cloud Firestore implementation of the DataStore
interface.

The FirestoreDataStore supports:
  - Plain collections and subcollection path templates with field macros
  - Document ID attachment: the document ID is written into the entity's
    configured ID field on every read
  - A fluent query builder over the client's Where/OrderBy/Limit chain
  - Snapshot streaming with restart and progress options
  - Transactions through the client's RunTransaction
  - Batch writes through the client's BulkWriter

Key Features:

Path templates:
Collection paths can use macros that are replaced with entity field values:

	registry.RegisterCollectionMap[Order](registry.CollectionMap{
	    Path:    "users/{UserID}/orders", // subcollection per user
	    IDField: "OrderID",
	})

String keys for templated paths list the macro values and the document ID,
slash-separated: store.GetOne(ctx, "user-1/order-9").

Query builder:

	users, err := store.NewQuery().
	    Where("status", "==", "active").
	    OrderByDesc("createdAt").
	    Limit(50).
	    Execute(ctx)

Streaming:
The snapshot streaming API supports configurable options:

	results := store.Stream(ctx, params,
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithMaxRestarts(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        log.Printf("Processed %d changes", p.ItemsProcessed)
	    }),
	)

Entities should tag their ID field `firestore:"-"` so the document ID is
never duplicated into the stored document data.

For usage examples, see the integration tests and documentation.
*/
package fstore
