/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import "testing"

type pathOrder struct {
	OrderID string `firestore:"-"`
	UserID  string `firestore:"userId"`
	Total   float64
}

func TestExpandPathFromEntity(t *testing.T) {
	t.Run("PlainCollection", func(t *testing.T) {
		path, err := expandPathFromEntity("users", pathOrder{})
		if err != nil {
			t.Fatalf("Failed to expand: %v", err)
		}
		if path != "users" {
			t.Errorf("Expected %q, got %q", "users", path)
		}
	})

	t.Run("SubcollectionTemplate", func(t *testing.T) {
		entity := pathOrder{OrderID: "o9", UserID: "u1"}
		path, err := expandPathFromEntity("users/{UserID}/orders", entity)
		if err != nil {
			t.Fatalf("Failed to expand: %v", err)
		}
		if path != "users/u1/orders" {
			t.Errorf("Expected %q, got %q", "users/u1/orders", path)
		}
	})

	t.Run("PointerEntity", func(t *testing.T) {
		entity := &pathOrder{UserID: "u2"}
		path, err := expandPathFromEntity("users/{UserID}/orders", entity)
		if err != nil {
			t.Fatalf("Failed to expand: %v", err)
		}
		if path != "users/u2/orders" {
			t.Errorf("Expected %q, got %q", "users/u2/orders", path)
		}
	})

	t.Run("UnknownField", func(t *testing.T) {
		if _, err := expandPathFromEntity("teams/{TeamID}/orders", pathOrder{}); err == nil {
			t.Error("Expected error for unknown macro field")
		}
	})

	t.Run("EmptyField", func(t *testing.T) {
		if _, err := expandPathFromEntity("users/{UserID}/orders", pathOrder{}); err == nil {
			t.Error("Expected error for empty macro field")
		}
	})
}

func TestExpandPathFromKey(t *testing.T) {
	tests := []struct {
		name     string
		template string
		key      string
		wantPath string
		wantID   string
		wantErr  bool
	}{
		{
			name:     "plain collection",
			template: "users",
			key:      "u1",
			wantPath: "users",
			wantID:   "u1",
		},
		{
			name:     "subcollection",
			template: "users/{UserID}/orders",
			key:      "u1/o9",
			wantPath: "users/u1/orders",
			wantID:   "o9",
		},
		{
			name:     "nested subcollection",
			template: "users/{UserID}/orders/{OrderID}/items",
			key:      "u1/o9/i3",
			wantPath: "users/u1/orders/o9/items",
			wantID:   "i3",
		},
		{
			name:     "too few segments",
			template: "users/{UserID}/orders",
			key:      "o9",
			wantErr:  true,
		},
		{
			name:     "too many segments",
			template: "users",
			key:      "u1/o9",
			wantErr:  true,
		},
		{
			name:     "empty segment",
			template: "users/{UserID}/orders",
			key:      "/o9",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPath, gotID, err := expandPathFromKey(tt.template, tt.key)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("Expected path %q, got %q", tt.wantPath, gotPath)
			}
			if gotID != tt.wantID {
				t.Errorf("Expected doc ID %q, got %q", tt.wantID, gotID)
			}
		})
	}
}

func TestKeyFromEntity(t *testing.T) {
	t.Run("PlainCollection", func(t *testing.T) {
		key, err := keyFromEntity("users", pathOrder{}, "u1")
		if err != nil {
			t.Fatalf("Failed to build key: %v", err)
		}
		if key != "u1" {
			t.Errorf("Expected %q, got %q", "u1", key)
		}
	})

	t.Run("SubcollectionTemplate", func(t *testing.T) {
		entity := pathOrder{UserID: "u1"}
		key, err := keyFromEntity("users/{UserID}/orders", entity, "o9")
		if err != nil {
			t.Fatalf("Failed to build key: %v", err)
		}
		if key != "u1/o9" {
			t.Errorf("Expected %q, got %q", "u1/o9", key)
		}
	})
}

func TestHasMacros(t *testing.T) {
	if hasMacros("users") {
		t.Error("Plain path should have no macros")
	}
	if !hasMacros("users/{UserID}/orders") {
		t.Error("Templated path should have macros")
	}
}
