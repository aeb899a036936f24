/*
Package storagemodels defines the data structures shared by the Firestore
ORM's datastore implementations.

Key Types:

QueryParams:
Declarative parameters for a Firestore query, usually produced by the
fluent query builder in datastore/fstore:

	limit := 100
	params := &QueryParams{
	    Conditions: []Condition{
	        {Path: "status", Op: "==", Value: "active"},
	        {Path: "score", Op: ">=", Value: 50},
	    },
	    Orders: []Order{{Path: "createdAt", Desc: true}},
	    Limit:  &limit,
	}

StreamResult:
A single document change delivered by a snapshot listener:

	type StreamResult[T any] struct {
	    Item  T                           // The decoded document
	    Kind  ChangeKind                  // added / modified / removed
	    Raw   *firestore.DocumentSnapshot // Raw Firestore snapshot
	    Error error                       // Item-specific error, if any
	    Meta  StreamMeta                  // Metadata about this item
	}

StreamOptions:
Configuration for snapshot streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithMaxRestarts(3),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different datastore
implementations.
*/
package storagemodels
