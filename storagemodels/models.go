/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package storagemodels

// Condition is a single Firestore field filter (path op value).
// Op is one of the operators accepted by the client's Where call:
// "==", "!=", "<", "<=", ">", ">=", "in", "not-in", "array-contains",
// "array-contains-any".
type Condition struct {
	Path  string
	Op    string
	Value interface{}
}

// Order defines ordering on a field path.
type Order struct {
	Path string
	Desc bool
}

// Cursor holds the field values of a query cursor. The values correspond
// positionally to the query's OrderBy fields.
type Cursor struct {
	// Values are the cursor field values.
	Values []interface{}
	// Exclusive indicates the cursor position itself is skipped
	// (StartAfter/EndBefore rather than StartAt/EndAt).
	Exclusive bool
}

// QueryParams defines parameters for a Firestore query.
// Used for both regular queries and snapshot streaming.
type QueryParams struct {
	// Conditions are the field filters, combined with AND.
	Conditions []Condition
	// Orders defines the sort order of the results.
	Orders []Order
	// Limit defines an optional maximum number of results.
	Limit *int
	// LimitToLast returns the last matching documents instead of the
	// first; requires at least one Order.
	LimitToLast *int
	// Offset skips the given number of results.
	Offset *int
	// SelectPaths restricts the returned document fields.
	SelectPaths []string
	// StartCursor positions the query start, if set.
	StartCursor *Cursor
	// EndCursor positions the query end, if set.
	EndCursor *Cursor
}
