package registry

import (
	"fmt"

	"cloud.google.com/go/firestore"
)

// DecodeFunc defines a function that takes a raw Firestore document snapshot
// and returns the decoded object.
type DecodeFunc func(snap *firestore.DocumentSnapshot) (interface{}, error)

// typeRegistry holds the mapping from a collection name (like "users", "orders")
// to its decode function.
var typeRegistry = make(map[string]DecodeFunc)

// RegisterType registers a decode function for a given collection name.
// If a function is already registered for the collection, it panics to prevent
// accidental overrides.
func RegisterType(collection string, fn DecodeFunc) {
	if _, exists := typeRegistry[collection]; exists {
		panic(fmt.Sprintf("type registry: type for collection %q already registered", collection))
	}
	typeRegistry[collection] = fn
}

// GetDecodeFunc returns the registered decode function for the given collection.
// If no function is registered, it returns an error.
func GetDecodeFunc(collection string) (DecodeFunc, error) {
	fn, ok := typeRegistry[collection]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for collection %q", collection)
	}
	return fn, nil
}
