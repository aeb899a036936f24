/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	ormerrors "github.com/schnellert/nest-firestore-orm/errors"
	"github.com/schnellert/nest-firestore-orm/registry"
	"github.com/schnellert/nest-firestore-orm/storagemodels"
)

// operators accepted by the client's Where call.
var validOperators = map[string]bool{
	"==":                 true,
	"!=":                 true,
	"<":                  true,
	"<=":                 true,
	">":                  true,
	">=":                 true,
	"in":                 true,
	"not-in":             true,
	"array-contains":     true,
	"array-contains-any": true,
}

// validateParams checks the declarative query parameters before they are
// handed to the client.
func validateParams(params *storagemodels.QueryParams) error {
	if params == nil {
		return nil
	}
	for _, c := range params.Conditions {
		if c.Path == "" {
			return ormerrors.NewValidationError("", "condition has an empty field path")
		}
		if !validOperators[c.Op] {
			return ormerrors.NewValidationError(c.Path, fmt.Sprintf("unknown operator %q", c.Op))
		}
	}
	for _, o := range params.Orders {
		if o.Path == "" {
			return ormerrors.NewValidationError("", "order has an empty field path")
		}
	}
	if params.Limit != nil && *params.Limit < 0 {
		return ormerrors.NewValidationError("", "limit must not be negative")
	}
	if params.Offset != nil && *params.Offset < 0 {
		return ormerrors.NewValidationError("", "offset must not be negative")
	}
	if params.LimitToLast != nil {
		if *params.LimitToLast < 0 {
			return ormerrors.NewValidationError("", "limit-to-last must not be negative")
		}
		if len(params.Orders) == 0 {
			return ormerrors.NewValidationError("", "limit-to-last requires at least one order")
		}
	}
	return nil
}

// applyParams chains the declarative parameters onto a client query.
// Each parameter maps to exactly one client call.
func applyParams(q firestore.Query, params *storagemodels.QueryParams) (firestore.Query, error) {
	if params == nil {
		return q, nil
	}
	if err := validateParams(params); err != nil {
		return q, err
	}

	for _, c := range params.Conditions {
		q = q.Where(c.Path, c.Op, c.Value)
	}
	for _, o := range params.Orders {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		q = q.OrderBy(o.Path, dir)
	}
	if len(params.SelectPaths) > 0 {
		q = q.Select(params.SelectPaths...)
	}
	if params.Offset != nil {
		q = q.Offset(*params.Offset)
	}
	if params.Limit != nil {
		q = q.Limit(*params.Limit)
	}
	if params.LimitToLast != nil {
		q = q.LimitToLast(*params.LimitToLast)
	}
	if params.StartCursor != nil {
		if params.StartCursor.Exclusive {
			q = q.StartAfter(params.StartCursor.Values...)
		} else {
			q = q.StartAt(params.StartCursor.Values...)
		}
	}
	if params.EndCursor != nil {
		if params.EndCursor.Exclusive {
			q = q.EndBefore(params.EndCursor.Values...)
		} else {
			q = q.EndAt(params.EndCursor.Values...)
		}
	}
	return q, nil
}

// baseQuery returns the query root for T. Plain collection paths query the
// collection directly; subcollection templates query the collection group
// of the final path segment.
func (d *FirestoreDataStore[T]) baseQuery() (firestore.Query, registry.CollectionMap, error) {
	m, err := d.collectionMap()
	if err != nil {
		return firestore.Query{}, m, err
	}
	if hasMacros(m.Path) {
		return d.client.CollectionGroup(m.CollectionName()).Query, m, nil
	}
	return d.client.Collection(m.Path).Query, m, nil
}

// Query returns all documents of type T matching the given parameters.
func (d *FirestoreDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error) {
	q, m, err := d.baseQuery()
	if err != nil {
		return nil, err
	}
	q, err = applyParams(q, params)
	if err != nil {
		return nil, err
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var results []T
	idField := m.ResolveIDField()
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		decoded, err := decodeSnapshot[T](snap, idField)
		if err != nil {
			return nil, err
		}
		results = append(results, *decoded)
	}
	return results, nil
}

// QueryCollectionGroup runs a collection-group query across every
// collection with the given name and decodes each document through the
// type registry. Documents of collections without a registered decode
// function fall back to a generic map.
func QueryCollectionGroup(ctx context.Context, client *firestore.Client, collection string, params *storagemodels.QueryParams) ([]interface{}, error) {
	q, err := applyParams(client.CollectionGroup(collection).Query, params)
	if err != nil {
		return nil, err
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var results []interface{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collection group query error: %w", err)
		}

		decodeFn, err := registry.GetDecodeFunc(snap.Ref.Parent.ID)
		if err != nil {
			// No registered type for this collection, fall back to a
			// generic map of the document data.
			results = append(results, snap.Data())
			continue
		}

		obj, err := decodeFn(snap)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %q in collection %q: %w", snap.Ref.ID, snap.Ref.Parent.ID, err)
		}
		results = append(results, obj)
	}
	return results, nil
}
