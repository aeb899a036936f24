/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package registry

import (
	"testing"

	"cloud.google.com/go/firestore"
)

type registryUser struct {
	ID   string `firestore:"-"`
	Name string `firestore:"name"`
}

type registryOrder struct {
	OrderID string `firestore:"-"`
	UserID  string `firestore:"userId"`
}

func TestCollectionMapRegistry(t *testing.T) {
	RegisterCollectionMap[registryUser](CollectionMap{Path: "users"})
	RegisterCollectionMap[registryOrder](CollectionMap{
		Path:    "users/{UserID}/orders",
		IDField: "OrderID",
	})

	t.Run("RegisteredType", func(t *testing.T) {
		m, ok := GetCollectionMap[registryUser]()
		if !ok {
			t.Fatal("Expected collection map for registryUser")
		}
		if m.Path != "users" {
			t.Errorf("Expected path %q, got %q", "users", m.Path)
		}
		if m.ResolveIDField() != "ID" {
			t.Errorf("Expected default ID field, got %q", m.ResolveIDField())
		}
		if m.CollectionName() != "users" {
			t.Errorf("Expected collection name %q, got %q", "users", m.CollectionName())
		}
	})

	t.Run("SubcollectionTemplate", func(t *testing.T) {
		m, ok := GetCollectionMap[registryOrder]()
		if !ok {
			t.Fatal("Expected collection map for registryOrder")
		}
		if m.ResolveIDField() != "OrderID" {
			t.Errorf("Expected ID field %q, got %q", "OrderID", m.ResolveIDField())
		}
		if m.CollectionName() != "orders" {
			t.Errorf("Expected collection name %q, got %q", "orders", m.CollectionName())
		}
	})

	t.Run("UnregisteredType", func(t *testing.T) {
		type unregistered struct{ ID string }
		if _, ok := GetCollectionMap[unregistered](); ok {
			t.Error("Expected no collection map for unregistered type")
		}
	})
}

func TestTypeRegistry(t *testing.T) {
	RegisterType("registry_users", func(snap *firestore.DocumentSnapshot) (interface{}, error) {
		return &registryUser{}, nil
	})

	t.Run("RegisteredCollection", func(t *testing.T) {
		fn, err := GetDecodeFunc("registry_users")
		if err != nil {
			t.Fatalf("GetDecodeFunc failed: %v", err)
		}
		obj, err := fn(nil)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if _, ok := obj.(*registryUser); !ok {
			t.Errorf("Expected *registryUser, got %T", obj)
		}
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		if _, err := GetDecodeFunc("missing"); err == nil {
			t.Error("Expected error for unknown collection")
		}
	})

	t.Run("DuplicateRegistrationPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic on duplicate registration")
			}
		}()
		RegisterType("registry_users", func(snap *firestore.DocumentSnapshot) (interface{}, error) {
			return nil, nil
		})
	})
}
