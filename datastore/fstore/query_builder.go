/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore/apiv1/firestorepb"

	"github.com/schnellert/nest-firestore-orm/storagemodels"
)

// QueryBuilder provides a fluent interface for building Firestore queries.
// Chain filter, order and pagination calls, then materialize with Execute,
// First, Count or Stream. Build returns the declarative parameters without
// executing, mirroring the client's lazily-evaluated query values.
type QueryBuilder[T any] struct {
	store  *FirestoreDataStore[T]
	params *storagemodels.QueryParams
}

// NewQuery creates a new query builder for the datastore's collection.
func (d *FirestoreDataStore[T]) NewQuery() *QueryBuilder[T] {
	return &QueryBuilder[T]{
		store:  d,
		params: &storagemodels.QueryParams{},
	}
}

// Where adds a field filter. Filters combine with AND.
func (q *QueryBuilder[T]) Where(path, op string, value interface{}) *QueryBuilder[T] {
	q.params.Conditions = append(q.params.Conditions, storagemodels.Condition{Path: path, Op: op, Value: value})
	return q
}

// OrderBy adds an ascending sort on the field path.
func (q *QueryBuilder[T]) OrderBy(path string) *QueryBuilder[T] {
	q.params.Orders = append(q.params.Orders, storagemodels.Order{Path: path})
	return q
}

// OrderByDesc adds a descending sort on the field path.
func (q *QueryBuilder[T]) OrderByDesc(path string) *QueryBuilder[T] {
	q.params.Orders = append(q.params.Orders, storagemodels.Order{Path: path, Desc: true})
	return q
}

// Limit caps the number of results.
func (q *QueryBuilder[T]) Limit(n int) *QueryBuilder[T] {
	q.params.Limit = &n
	return q
}

// LimitToLast returns the last n matching documents. Requires an order.
func (q *QueryBuilder[T]) LimitToLast(n int) *QueryBuilder[T] {
	q.params.LimitToLast = &n
	return q
}

// Offset skips the first n results.
func (q *QueryBuilder[T]) Offset(n int) *QueryBuilder[T] {
	q.params.Offset = &n
	return q
}

// Select restricts the returned document fields.
func (q *QueryBuilder[T]) Select(paths ...string) *QueryBuilder[T] {
	q.params.SelectPaths = append(q.params.SelectPaths, paths...)
	return q
}

// StartAt positions the query start at the given order-field values.
func (q *QueryBuilder[T]) StartAt(values ...interface{}) *QueryBuilder[T] {
	q.params.StartCursor = &storagemodels.Cursor{Values: values}
	return q
}

// StartAfter positions the query start just after the given values.
func (q *QueryBuilder[T]) StartAfter(values ...interface{}) *QueryBuilder[T] {
	q.params.StartCursor = &storagemodels.Cursor{Values: values, Exclusive: true}
	return q
}

// EndAt positions the query end at the given order-field values.
func (q *QueryBuilder[T]) EndAt(values ...interface{}) *QueryBuilder[T] {
	q.params.EndCursor = &storagemodels.Cursor{Values: values}
	return q
}

// EndBefore positions the query end just before the given values.
func (q *QueryBuilder[T]) EndBefore(values ...interface{}) *QueryBuilder[T] {
	q.params.EndCursor = &storagemodels.Cursor{Values: values, Exclusive: true}
	return q
}

// Build validates the chained calls and returns the query parameters.
func (q *QueryBuilder[T]) Build() (*storagemodels.QueryParams, error) {
	if err := validateParams(q.params); err != nil {
		return nil, err
	}
	return q.params, nil
}

// Execute runs the query and returns all matching documents.
func (q *QueryBuilder[T]) Execute(ctx context.Context) ([]T, error) {
	params, err := q.Build()
	if err != nil {
		return nil, err
	}
	return q.store.Query(ctx, params)
}

// First runs the query limited to one result. It returns (nil, nil) when
// nothing matches, following the GetOne contract.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	one := 1
	params, err := q.Build()
	if err != nil {
		return nil, err
	}
	limited := *params
	limited.Limit = &one
	limited.LimitToLast = nil

	results, err := q.store.Query(ctx, &limited)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Count runs a server-side aggregation over the query and returns the
// number of matching documents.
func (q *QueryBuilder[T]) Count(ctx context.Context) (int64, error) {
	params, err := q.Build()
	if err != nil {
		return 0, err
	}
	base, _, err := q.store.baseQuery()
	if err != nil {
		return 0, err
	}
	fq, err := applyParams(base, params)
	if err != nil {
		return 0, err
	}

	results, err := fq.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count error: %w", err)
	}
	value, ok := results["count"]
	if !ok {
		return 0, fmt.Errorf("count aggregation missing from result")
	}
	pbValue, ok := value.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count aggregation type %T", value)
	}
	return pbValue.GetIntegerValue(), nil
}

// Stream opens a snapshot listener for the query.
func (q *QueryBuilder[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) (<-chan storagemodels.StreamResult[T], error) {
	params, err := q.Build()
	if err != nil {
		return nil, err
	}
	return q.store.Stream(ctx, params, opts...), nil
}
