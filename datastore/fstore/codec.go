/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"fmt"
	"reflect"
	"sort"

	"cloud.google.com/go/firestore"

	ormerrors "github.com/schnellert/nest-firestore-orm/errors"
)

// setIDField writes the document ID into the entity's configured ID field.
// String and *string fields are supported; the field should be tagged
// `firestore:"-"` so the ID is never duplicated into the document data.
func setIDField(entity any, field, id string) error {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("entity must be a non-nil pointer, got %T", entity)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("entity must point to a struct, got %s", v.Kind())
	}

	f := v.FieldByName(field)
	if !f.IsValid() {
		return fmt.Errorf("ID field %q not found on %s", field, v.Type())
	}
	if !f.CanSet() {
		return fmt.Errorf("ID field %q on %s is not settable", field, v.Type())
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(id)
		return nil
	case reflect.Ptr:
		if f.Type().Elem().Kind() == reflect.String {
			p := reflect.New(f.Type().Elem())
			p.Elem().SetString(id)
			f.Set(p)
			return nil
		}
	}
	return fmt.Errorf("ID field %q on %s must be string or *string", field, v.Type())
}

// idFieldValue reads the document ID from the entity's configured ID field.
// A nil *string field reads as empty.
func idFieldValue(entity any, field string) (string, error) {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", fmt.Errorf("entity is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("entity must be a struct, got %s", v.Kind())
	}

	f := v.FieldByName(field)
	if !f.IsValid() {
		return "", fmt.Errorf("ID field %q not found on %s", field, v.Type())
	}
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return "", nil
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return "", fmt.Errorf("ID field %q on %s must be string or *string", field, v.Type())
	}
	return f.String(), nil
}

// decodeSnapshot unmarshals a document snapshot into a new T and attaches
// the document ID to the configured ID field.
func decodeSnapshot[T any](snap *firestore.DocumentSnapshot, idField string) (*T, error) {
	result := new(T)
	if err := snap.DataTo(result); err != nil {
		return nil, fmt.Errorf("failed to decode document %q: %w", snap.Ref.ID, err)
	}
	if err := setIDField(result, idField, snap.Ref.ID); err != nil {
		return nil, err
	}
	return result, nil
}

// buildUpdates transforms a field->value map into the client's update
// list, sorted by path for deterministic output. Values may use the
// client's sentinels (firestore.Delete, firestore.ServerTimestamp,
// firestore.Increment, ...); they pass through untouched.
func buildUpdates(updates map[string]interface{}) ([]firestore.Update, error) {
	if len(updates) == 0 {
		return nil, ormerrors.NewValidationError("", "no updates provided")
	}

	paths := make([]string, 0, len(updates))
	for path := range updates {
		if path == "" {
			return nil, ormerrors.NewValidationError("", "empty update field path")
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	result := make([]firestore.Update, 0, len(updates))
	for _, path := range paths {
		result = append(result, firestore.Update{Path: path, Value: updates[path]})
	}
	return result, nil
}
