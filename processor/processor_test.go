/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package processor

import (
	"bytes"
	"strings"
	"testing"
)

const testSpec = `
openapi: 3.0.0
info:
  title: Test API
  version: 1.0.0
components:
  schemas:
    UserProfile:
      type: object
      x-firestore-collection:
        path: "users"
        idField: "Id"
      properties:
        id:
          type: string
        email:
          type: string
    Order:
      type: object
      x-firestore-collection:
        path: "users/{UserId}/orders"
      properties:
        orderId:
          type: string
    Untagged:
      type: object
      properties:
        name:
          type: string
`

func TestParse(t *testing.T) {
	models, err := Parse(strings.NewReader(testSpec))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(models) != 2 {
		t.Fatalf("Expected 2 annotated models, got %d", len(models))
	}

	// Models are sorted by name
	if models[0].Name != "Order" || models[1].Name != "UserProfile" {
		t.Errorf("Unexpected model order: %+v", models)
	}

	if models[0].Annotation.Path != "users/{UserId}/orders" {
		t.Errorf("Unexpected order path: %q", models[0].Annotation.Path)
	}
	if models[0].CollectionName() != "orders" {
		t.Errorf("Expected collection name %q, got %q", "orders", models[0].CollectionName())
	}
	if models[0].IDFieldName() != "ID" {
		t.Errorf("Expected default ID field, got %q", models[0].IDFieldName())
	}

	if models[1].Annotation.IDField != "Id" {
		t.Errorf("Expected ID field %q, got %q", "Id", models[1].Annotation.IDField)
	}
}

func TestParseSwaggerDefinitions(t *testing.T) {
	spec := `
swagger: "2.0"
definitions:
  Player:
    type: object
    x-firestore-collection:
      path: "players"
`
	models, err := Parse(strings.NewReader(spec))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(models) != 1 || models[0].Name != "Player" {
		t.Fatalf("Expected Player model, got %+v", models)
	}
}

func TestParseMissingPath(t *testing.T) {
	spec := `
components:
  schemas:
    Broken:
      type: object
      x-firestore-collection:
        idField: "Id"
`
	if _, err := Parse(strings.NewReader(spec)); err == nil {
		t.Error("Expected error for annotation without path")
	}
}

func TestGenerate(t *testing.T) {
	models, err := Parse(strings.NewReader(testSpec))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Generate(&buf, "models", models); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := buf.String()

	expectations := []string{
		"package models",
		"// Code generated by collectionmap. DO NOT EDIT.",
		`registry.RegisterCollectionMap[Order](registry.CollectionMap{`,
		`Path:    "users/{UserId}/orders",`,
		`registry.RegisterType("orders", func(snap *firestore.DocumentSnapshot) (interface{}, error) {`,
		`registry.RegisterCollectionMap[UserProfile](registry.CollectionMap{`,
		`v.Id = snap.Ref.ID`,
	}
	for _, want := range expectations {
		if !strings.Contains(out, want) {
			t.Errorf("Generated code missing %q\n%s", want, out)
		}
	}
}

func TestGenerateNoModels(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, "models", nil); err == nil {
		t.Error("Expected error for empty model list")
	}
}
