/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/schnellert/nest-firestore-orm/datastore"
	ormerrors "github.com/schnellert/nest-firestore-orm/errors"
)

// RunTransaction executes fn atomically. Retries on contention are owned
// by the client; fn may run more than once and must be idempotent.
func (d *FirestoreDataStore[T]) RunTransaction(ctx context.Context, fn func(tx datastore.Tx[T]) error) error {
	return d.RunTransactionWithOptions(ctx, fn)
}

// RunTransactionWithOptions executes fn atomically with client transaction
// options, for example firestore.MaxAttempts(1) or firestore.ReadOnly.
func (d *FirestoreDataStore[T]) RunTransactionWithOptions(ctx context.Context, fn func(tx datastore.Tx[T]) error, opts ...firestore.TransactionOption) error {
	err := d.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(&firestoreTx[T]{store: d, ctx: ctx, tx: t})
	}, opts...)
	if err != nil {
		var zero T
		return ormerrors.FromStatus(fmt.Sprintf("%T", zero), "", err)
	}
	return nil
}

// firestoreTx adapts the client transaction to the datastore.Tx contract.
// The transaction context is captured at creation time.
type firestoreTx[T any] struct {
	store *FirestoreDataStore[T]
	ctx   context.Context
	tx    *firestore.Transaction
}

var _ datastore.Tx[checkEntity] = (*firestoreTx[checkEntity])(nil)

// Get reads a document inside the transaction.
// It returns (nil, nil) when the document does not exist.
func (t *firestoreTx[T]) Get(key string) (*T, error) {
	ref, m, err := t.store.docRefForKey(key)
	if err != nil {
		return nil, err
	}
	snap, err := t.tx.Get(ref)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tx get %q: %w", key, err)
	}
	return decodeSnapshot[T](snap, m.ResolveIDField())
}

// Put writes the entity inside the transaction.
func (t *firestoreTx[T]) Put(entity T) error {
	ref, _, err := t.store.docRefForEntity(entity)
	if err != nil {
		return err
	}
	return t.tx.Set(ref, entity)
}

// Update applies a field-mask update inside the transaction.
func (t *firestoreTx[T]) Update(key string, updates map[string]interface{}) error {
	ref, _, err := t.store.docRefForKey(key)
	if err != nil {
		return err
	}
	ups, err := buildUpdates(updates)
	if err != nil {
		return err
	}
	return t.tx.Update(ref, ups)
}

// Delete removes the document inside the transaction.
func (t *firestoreTx[T]) Delete(key string) error {
	ref, _, err := t.store.docRefForKey(key)
	if err != nil {
		return err
	}
	return t.tx.Delete(ref)
}
