/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package processor

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// CollectionAnnotation is the x-firestore-collection vendor extension.
type CollectionAnnotation struct {
	Path    string `yaml:"path"`
	IDField string `yaml:"idField"`
}

// Model is a schema annotated with a collection mapping.
type Model struct {
	Name       string
	Annotation CollectionAnnotation
}

// CollectionName returns the final segment of the collection path.
func (m Model) CollectionName() string {
	segments := strings.Split(m.Annotation.Path, "/")
	return segments[len(segments)-1]
}

// IDFieldName returns the configured ID field, or "ID" when unset.
func (m Model) IDFieldName() string {
	if m.Annotation.IDField == "" {
		return "ID"
	}
	return m.Annotation.IDField
}

// openAPIDoc captures the schema sections of an OpenAPI document.
// Both OpenAPI 3 (components.schemas) and Swagger 2 (definitions) layouts
// are accepted.
type openAPIDoc struct {
	Components struct {
		Schemas map[string]yaml.Node `yaml:"schemas"`
	} `yaml:"components"`
	Definitions map[string]yaml.Node `yaml:"definitions"`
}

// schemaExtensions captures the vendor extensions of a single schema.
type schemaExtensions struct {
	FirestoreCollection *CollectionAnnotation `yaml:"x-firestore-collection"`
}

// Parse reads an OpenAPI document and returns the models carrying the
// x-firestore-collection extension, sorted by name.
func Parse(r io.Reader) ([]Model, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec: %w", err)
	}

	var doc openAPIDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse spec: %w", err)
	}

	schemas := doc.Components.Schemas
	if len(schemas) == 0 {
		schemas = doc.Definitions
	}

	var models []Model
	for name, node := range schemas {
		var ext schemaExtensions
		if err := node.Decode(&ext); err != nil {
			return nil, fmt.Errorf("failed to decode schema %q: %w", name, err)
		}
		if ext.FirestoreCollection == nil {
			continue
		}
		if ext.FirestoreCollection.Path == "" {
			return nil, fmt.Errorf("schema %q: x-firestore-collection is missing a path", name)
		}
		models = append(models, Model{Name: name, Annotation: *ext.FirestoreCollection})
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

var fileTemplate = template.Must(template.New("registrations").Parse(`// Code generated by collectionmap. DO NOT EDIT.

package {{.Package}}

import (
	"cloud.google.com/go/firestore"

	"github.com/schnellert/nest-firestore-orm/registry"
)

func init() {
{{- range .Models}}
	registry.RegisterCollectionMap[{{.Name}}](registry.CollectionMap{
		Path:    {{printf "%q" .Annotation.Path}},
		IDField: {{printf "%q" .Annotation.IDField}},
	})

	registry.RegisterType({{printf "%q" .CollectionName}}, func(snap *firestore.DocumentSnapshot) (interface{}, error) {
		v := &{{.Name}}{}
		if err := snap.DataTo(v); err != nil {
			return nil, err
		}
		v.{{.IDFieldName}} = snap.Ref.ID
		return v, nil
	})
{{end -}}
}
`))

// Generate writes the registration file for the given models. The generated
// decode functions assume a plain string ID field on each model.
func Generate(w io.Writer, pkg string, models []Model) error {
	if pkg == "" {
		return fmt.Errorf("package name is required")
	}
	if len(models) == 0 {
		return fmt.Errorf("no schemas carry the x-firestore-collection extension")
	}

	var buf bytes.Buffer
	data := struct {
		Package string
		Models  []Model
	}{Package: pkg, Models: models}

	if err := fileTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render registrations: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("generated code does not compile: %w", err)
	}

	if _, err := w.Write(formatted); err != nil {
		return fmt.Errorf("failed to write registrations: %w", err)
	}
	return nil
}

// Command-line flags, registered at import time so a wrapping command can
// parse the default flag set once.
var (
	input  = flag.String("input", "", "OpenAPI spec file with x-firestore-collection extensions")
	output = flag.String("output", "collections_gen.go", "Output file for generated registrations")
	pkg    = flag.String("package", "models", "Package name of the generated file")
)

// Main runs the processor as a command-line tool.
func Main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "collectionmap: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	in, err := os.Open(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collectionmap: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	models, err := Parse(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collectionmap: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collectionmap: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := Generate(out, *pkg, models); err != nil {
		fmt.Fprintf(os.Stderr, "collectionmap: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("collectionmap: generated %s with %d registration(s)\n", *output, len(models))
}
