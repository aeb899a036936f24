/*
Package registry manages collection metadata and type registration for the
Firestore ORM.

The registry system enables:
  - Declaring which Firestore collection a Go type is stored in,
    equivalent to annotating an entity class with a collection name
  - Subcollection path templates with field macros
  - Dynamic decoding of collection-group query results

Collection Map Registry:
Associates Go types with Firestore collection paths:

	registry.RegisterCollectionMap[User](registry.CollectionMap{
	    Path: "users",
	})

	registry.RegisterCollectionMap[Order](registry.CollectionMap{
	    Path:    "users/{UserID}/orders",
	    IDField: "OrderID",
	})

Type Registry:
Maps collection names to decode functions:

	registry.RegisterType("users", func(snap *firestore.DocumentSnapshot) (interface{}, error) {
	    var u User
	    if err := snap.DataTo(&u); err != nil {
	        return nil, err
	    }
	    u.ID = snap.Ref.ID
	    return &u, nil
	})

The registry is thread-safe and should be populated during initialization,
typically in init() functions or through generated code (see the processor
package).
*/
package registry
