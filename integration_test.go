//go:build integration
// +build integration

/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fsorm_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	fsorm "github.com/schnellert/nest-firestore-orm"
	"github.com/schnellert/nest-firestore-orm/datastore"
	"github.com/schnellert/nest-firestore-orm/datastore/fstore"
	"github.com/schnellert/nest-firestore-orm/registry"
	"github.com/schnellert/nest-firestore-orm/storagemodels"
)

// Test entities
type IntegrationUser struct {
	ID        string    `firestore:"-"`
	Email     string    `firestore:"email"`
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type IntegrationOrder struct {
	ID        string    `firestore:"-"`
	UserID    string    `firestore:"userId"`
	Total     float64   `firestore:"total"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func init() {
	godotenv.Load()

	registry.RegisterCollectionMap[IntegrationUser](registry.CollectionMap{
		Path: "integration_users",
	})
	registry.RegisterCollectionMap[IntegrationOrder](registry.CollectionMap{
		Path: "integration_users/{UserID}/orders",
	})
}

func setupTestDataStore[T any](t *testing.T) *fstore.FirestoreDataStore[T] {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set, skipping integration test")
	}
	if databaseID == "" {
		databaseID = "(default)"
	}

	store, err := fstore.NewFirestoreDataStore[T](context.Background(), projectID, databaseID)
	if err != nil {
		t.Fatalf("Failed to create datastore: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store
}

func TestIntegrationBasicOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store := setupTestDataStore[IntegrationUser](t)

	user := IntegrationUser{
		ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
		Email:     "test@example.com",
		Name:      "Test User",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Test Put
	err := store.Put(ctx, user)
	if err != nil {
		t.Fatalf("Failed to put user: %v", err)
	}

	// Test GetOne
	retrieved, err := store.GetOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if retrieved == nil {
		t.Fatal("Expected user, got nil")
	}
	if retrieved.ID != user.ID || retrieved.Email != user.Email {
		t.Errorf("Retrieved user doesn't match: got %+v, want %+v", retrieved, user)
	}

	// Test Update
	updates := map[string]interface{}{
		"name":      "Updated Name",
		"updatedAt": time.Now(),
	}
	err = store.Update(ctx, user.ID, updates)
	if err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}

	retrieved, err = store.GetOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get updated user: %v", err)
	}
	if retrieved.Name != "Updated Name" {
		t.Errorf("Expected updated name, got %q", retrieved.Name)
	}

	// Test Delete
	err = store.Delete(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	// Verify deletion: missing documents yield (nil, nil)
	retrieved, err = store.GetOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("Unexpected error after delete: %v", err)
	}
	if retrieved != nil {
		t.Errorf("Expected nil after delete, got %+v", retrieved)
	}
}

func TestIntegrationCreate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store := setupTestDataStore[IntegrationUser](t)

	// Create with an empty ID lets Firestore assign one
	user := IntegrationUser{
		Email:     "created@example.com",
		Name:      "Created User",
		CreatedAt: time.Now(),
	}

	id, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if id == "" {
		t.Fatal("Expected generated ID")
	}
	defer store.Delete(ctx, id)

	retrieved, err := store.GetOne(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get created user: %v", err)
	}
	if retrieved == nil || retrieved.Email != user.Email {
		t.Errorf("Retrieved user doesn't match: got %+v", retrieved)
	}
}

func TestIntegrationQuery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store := setupTestDataStore[IntegrationOrder](t)
	userID := fmt.Sprintf("user-%d", time.Now().Unix())

	orders := []IntegrationOrder{
		{ID: "order-1", UserID: userID, Total: 100.50, Status: "pending", CreatedAt: time.Now()},
		{ID: "order-2", UserID: userID, Total: 200.75, Status: "completed", CreatedAt: time.Now()},
		{ID: "order-3", UserID: userID, Total: 50.25, Status: "pending", CreatedAt: time.Now()},
	}

	for _, order := range orders {
		if err := store.Put(ctx, order); err != nil {
			t.Fatalf("Failed to put order: %v", err)
		}
	}

	// Clean up: keys for templated paths carry the macro segments
	defer func() {
		for _, order := range orders {
			store.Delete(ctx, fmt.Sprintf("%s/%s", userID, order.ID))
		}
	}()

	// Query pending orders via the fluent builder
	results, err := store.NewQuery().
		Where("userId", "==", userID).
		Where("status", "==", "pending").
		OrderBy("total").
		Execute(ctx)
	if err != nil {
		t.Fatalf("Failed to query orders: %v", err)
	}
	if len(results) < 2 {
		t.Errorf("Expected at least 2 pending orders, got %d", len(results))
	}

	// Count aggregation
	count, err := store.NewQuery().
		Where("userId", "==", userID).
		Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count orders: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 orders, got %d", count)
	}
}

func TestIntegrationStreaming(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := setupTestDataStore[IntegrationUser](t)

	// Create users before streaming so the first snapshot includes them
	baseTime := time.Now().Unix()
	users := make([]IntegrationUser, 5)
	for i := 0; i < 5; i++ {
		users[i] = IntegrationUser{
			ID:        fmt.Sprintf("stream-test-%d-%d", baseTime, i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Name:      fmt.Sprintf("User %d", i),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := store.Put(ctx, users[i]); err != nil {
			t.Fatalf("Failed to put user: %v", err)
		}
	}
	defer func() {
		for _, user := range users {
			store.Delete(context.Background(), user.ID)
		}
	}()

	var progressCalled int
	params := &storagemodels.QueryParams{
		Conditions: []storagemodels.Condition{
			{Path: "email", Op: ">=", Value: "user"},
		},
	}

	resultChan := store.Stream(ctx, params,
		storagemodels.WithBufferSize(3),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			progressCalled++
			t.Logf("Progress: %d items processed", p.ItemsProcessed)
		}),
	)

	count := 0
	for result := range resultChan {
		if result.Error != nil {
			t.Errorf("Stream error: %v", result.Error)
			continue
		}
		count++
		if count >= 5 {
			cancel()
		}
	}

	if count < 5 {
		t.Logf("Note: Got %d items, expected at least 5. This might be due to eventual consistency.", count)
	}
	if progressCalled == 0 {
		t.Error("Progress handler was not called")
	}
}

func TestIntegrationTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store := setupTestDataStore[IntegrationUser](t)

	user := IntegrationUser{
		ID:        fmt.Sprintf("txn-test-%d", time.Now().Unix()),
		Email:     "txn@example.com",
		Name:      "Txn User",
		CreatedAt: time.Now(),
	}
	if err := store.Put(ctx, user); err != nil {
		t.Fatalf("Failed to put user: %v", err)
	}
	defer store.Delete(ctx, user.ID)

	err := store.RunTransaction(ctx, func(tx datastore.Tx[IntegrationUser]) error {
		current, err := tx.Get(user.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("user %s not found in transaction", user.ID)
		}
		return tx.Update(user.ID, map[string]interface{}{
			"name": current.Name + " (verified)",
		})
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	retrieved, err := store.GetOne(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if retrieved.Name != "Txn User (verified)" {
		t.Errorf("Expected transactional update, got %q", retrieved.Name)
	}
}

func TestIntegrationMultiTypeStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	mts := fsorm.NewMultiTypeStorage()

	userStore := setupTestDataStore[IntegrationUser](t)
	err := fsorm.RegisterDataStore[IntegrationUser](mts, "users", userStore)
	if err != nil {
		t.Fatalf("Failed to register user store: %v", err)
	}

	orderStore := setupTestDataStore[IntegrationOrder](t)
	err = fsorm.RegisterDataStore[IntegrationOrder](mts, "orders", orderStore)
	if err != nil {
		t.Fatalf("Failed to register order store: %v", err)
	}

	retrievedUserStore, err := fsorm.GetDataStore[IntegrationUser](mts, "users")
	if err != nil {
		t.Fatalf("Failed to get user store: %v", err)
	}

	user := IntegrationUser{
		ID:        fmt.Sprintf("mts-test-%d", time.Now().Unix()),
		Email:     "mts@example.com",
		Name:      "MTS Test User",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = retrievedUserStore.Put(ctx, user)
	if err != nil {
		t.Fatalf("Failed to put user through MTS: %v", err)
	}

	// Clean up
	retrievedUserStore.Delete(ctx, user.ID)
}
