/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
)

// PutAll writes the given entities through the client's BulkWriter. Writes
// are sent in parallel; the call returns after every write has resolved,
// joining any per-document errors.
func (d *FirestoreDataStore[T]) PutAll(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}

	bw := d.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(entities))
	for _, entity := range entities {
		ref, _, err := d.docRefForEntity(entity)
		if err != nil {
			bw.End()
			return err
		}
		job, err := bw.Set(ref, entity)
		if err != nil {
			bw.End()
			return fmt.Errorf("bulk put %q: %w", ref.Path, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var errs []error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeleteAll removes the documents with the given keys through the client's
// BulkWriter.
func (d *FirestoreDataStore[T]) DeleteAll(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	bw := d.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(keys))
	for _, key := range keys {
		ref, _, err := d.docRefForKey(key)
		if err != nil {
			bw.End()
			return err
		}
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("bulk delete %q: %w", key, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var errs []error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
