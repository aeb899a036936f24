/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"testing"

	"github.com/schnellert/nest-firestore-orm/registry"
)

// Test entity for query building
type queryUser struct {
	ID     string `firestore:"-"`
	Email  string `firestore:"email"`
	Status string `firestore:"status"`
	Score  int    `firestore:"score"`
}

func init() {
	registry.RegisterCollectionMap[queryUser](registry.CollectionMap{Path: "query_users"})
}

func TestQueryBuilder(t *testing.T) {
	// Query building never touches the network, so a store without a
	// client is enough to exercise Build.
	store := &FirestoreDataStore[queryUser]{}

	t.Run("BuildBasicQuery", func(t *testing.T) {
		params, err := store.NewQuery().
			Where("status", "==", "active").
			Where("score", ">=", 50).
			OrderByDesc("score").
			Limit(10).
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		if len(params.Conditions) != 2 {
			t.Fatalf("Expected 2 conditions, got %d", len(params.Conditions))
		}
		if params.Conditions[0].Path != "status" || params.Conditions[0].Op != "==" {
			t.Errorf("Unexpected first condition: %+v", params.Conditions[0])
		}
		if len(params.Orders) != 1 || !params.Orders[0].Desc {
			t.Errorf("Expected one descending order, got %+v", params.Orders)
		}
		if params.Limit == nil || *params.Limit != 10 {
			t.Errorf("Expected limit 10, got %v", params.Limit)
		}
	})

	t.Run("BuildWithCursors", func(t *testing.T) {
		params, err := store.NewQuery().
			OrderBy("score").
			StartAfter(50).
			EndAt(100).
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		if params.StartCursor == nil || !params.StartCursor.Exclusive {
			t.Errorf("Expected exclusive start cursor, got %+v", params.StartCursor)
		}
		if params.EndCursor == nil || params.EndCursor.Exclusive {
			t.Errorf("Expected inclusive end cursor, got %+v", params.EndCursor)
		}
	})

	t.Run("BuildWithSelectAndOffset", func(t *testing.T) {
		params, err := store.NewQuery().
			Select("email", "status").
			Offset(20).
			Build()
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}
		if len(params.SelectPaths) != 2 {
			t.Errorf("Expected 2 select paths, got %v", params.SelectPaths)
		}
		if params.Offset == nil || *params.Offset != 20 {
			t.Errorf("Expected offset 20, got %v", params.Offset)
		}
	})

	t.Run("UnknownOperator", func(t *testing.T) {
		_, err := store.NewQuery().
			Where("status", "equals", "active").
			Build()
		if err == nil {
			t.Error("Expected error for unknown operator")
		}
	})

	t.Run("EmptyFieldPath", func(t *testing.T) {
		_, err := store.NewQuery().
			Where("", "==", "active").
			Build()
		if err == nil {
			t.Error("Expected error for empty field path")
		}
	})

	t.Run("LimitToLastWithoutOrder", func(t *testing.T) {
		_, err := store.NewQuery().
			LimitToLast(5).
			Build()
		if err == nil {
			t.Error("Expected error for limit-to-last without order")
		}
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		_, err := store.NewQuery().
			Limit(-1).
			Build()
		if err == nil {
			t.Error("Expected error for negative limit")
		}
	})
}
