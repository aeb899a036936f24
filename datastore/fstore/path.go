/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	ormerrors "github.com/schnellert/nest-firestore-orm/errors"
)

var macroPattern = regexp.MustCompile(`\{([^}]+)\}`)

// expandPathFromEntity expands the macros in a collection path template
// using the entity's field values. "users/{UserID}/orders" with an entity
// whose UserID is "u1" becomes "users/u1/orders".
func expandPathFromEntity(template string, entity any) (string, error) {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", ormerrors.NewValidationError("", "entity is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", ormerrors.NewValidationError("", fmt.Sprintf("entity must be a struct, got %s", v.Kind()))
	}

	var expandErr error
	expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		name := strings.Trim(macro, "{}")
		f := v.FieldByName(name)
		if !f.IsValid() {
			expandErr = ormerrors.NewValidationError(name, "path macro references unknown field")
			return ""
		}
		s, err := fieldString(f)
		if err != nil {
			expandErr = ormerrors.NewValidationError(name, err.Error())
			return ""
		}
		if s == "" {
			expandErr = ormerrors.NewValidationError(name, "path macro field is empty")
			return ""
		}
		return s
	})
	if expandErr != nil {
		return "", expandErr
	}
	return expanded, nil
}

// expandPathFromKey resolves a string key against a collection path
// template. The key is the slash-separated sequence of macro values
// followed by the document ID, so for "users/{UserID}/orders" the key
// "u1/o9" yields the collection path "users/u1/orders" and document ID
// "o9". A template without macros takes the document ID alone.
func expandPathFromKey(template, key string) (collectionPath, docID string, err error) {
	macros := macroPattern.FindAllString(template, -1)
	segments := strings.Split(key, "/")
	if len(segments) != len(macros)+1 {
		return "", "", ormerrors.NewValidationError("key",
			fmt.Sprintf("key %q must have %d segment(s) for template %q", key, len(macros)+1, template))
	}
	for _, s := range segments {
		if s == "" {
			return "", "", ormerrors.NewValidationError("key", fmt.Sprintf("key %q has an empty segment", key))
		}
	}

	docID = segments[len(segments)-1]
	i := 0
	collectionPath = macroPattern.ReplaceAllStringFunc(template, func(string) string {
		s := segments[i]
		i++
		return s
	})
	return collectionPath, docID, nil
}

// keyFromEntity derives the string key of an entity by expanding the
// template macros and appending the ID field value. It is the inverse of
// expandPathFromKey.
func keyFromEntity(template string, entity any, id string) (string, error) {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	segments := make([]string, 0, 2)
	for _, macro := range macroPattern.FindAllString(template, -1) {
		name := strings.Trim(macro, "{}")
		f := v.FieldByName(name)
		if !f.IsValid() {
			return "", ormerrors.NewValidationError(name, "path macro references unknown field")
		}
		s, err := fieldString(f)
		if err != nil {
			return "", ormerrors.NewValidationError(name, err.Error())
		}
		if s == "" {
			return "", ormerrors.NewValidationError(name, "path macro field is empty")
		}
		segments = append(segments, s)
	}
	segments = append(segments, id)
	return strings.Join(segments, "/"), nil
}

// hasMacros reports whether the path template addresses a subcollection.
func hasMacros(template string) bool {
	return macroPattern.MatchString(template)
}

// fieldString converts a struct field value into a path segment.
func fieldString(f reflect.Value) (string, error) {
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return "", nil
		}
		f = f.Elem()
	}
	switch f.Kind() {
	case reflect.String:
		return f.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", f.Int()), nil
	default:
		return "", fmt.Errorf("unsupported path field kind %s", f.Kind())
	}
}
