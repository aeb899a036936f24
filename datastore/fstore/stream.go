/*
 * Copyright © 2025 Dominik Schnellert, All rights reserved.
 */

package fstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/schnellert/nest-firestore-orm/storagemodels"
)

// Stream opens a snapshot listener for the given parameters and delivers
// document changes over a buffered channel until ctx is canceled. The
// channel is closed when the listener stops.
func (d *FirestoreDataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	// Apply options
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go d.streamWorker(ctx, params, options, resultCh)

	return resultCh
}

// streamWorker runs the snapshot listener loop, restarting it after
// terminal errors up to MaxRestarts.
func (d *FirestoreDataStore[T]) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var snapshotNumber int
	var restarts int
	startTime := time.Now()
	var accumulated []error

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed:     atomic.LoadInt64(&itemIndex),
			SnapshotsProcessed: snapshotNumber,
			Restarts:           restarts,
			Errors:             accumulated,
			StartTime:          startTime,
		}
		elapsed := time.Since(startTime).Seconds()
		if elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	q, m, err := d.baseQuery()
	if err != nil {
		resultCh <- storagemodels.StreamResult[T]{Error: err}
		return
	}
	q, err = applyParams(q, params)
	if err != nil {
		resultCh <- storagemodels.StreamResult[T]{Error: err}
		return
	}
	idField := m.ResolveIDField()

	for {
		err := d.consumeSnapshots(ctx, q, idField, resultCh, &itemIndex, &snapshotNumber, reportProgress)
		if err == nil || ctx.Err() != nil {
			// Listener stopped because the context ended.
			reportProgress()
			return
		}

		// Terminal listener error: ask the error handler, then restart
		// with backoff until the restart budget is exhausted.
		if options.ErrorHandler != nil && !options.ErrorHandler(err) {
			resultCh <- storagemodels.StreamResult[T]{
				Error: fmt.Errorf("snapshot listener failed: %w", err),
				Meta: storagemodels.StreamMeta{
					Index:          atomic.LoadInt64(&itemIndex),
					SnapshotNumber: snapshotNumber,
				},
			}
			return
		}
		if restarts >= options.MaxRestarts {
			resultCh <- storagemodels.StreamResult[T]{
				Error: fmt.Errorf("snapshot listener failed after %d restarts: %w", restarts, err),
				Meta: storagemodels.StreamMeta{
					Index:          atomic.LoadInt64(&itemIndex),
					SnapshotNumber: snapshotNumber,
				},
			}
			return
		}

		accumulated = append(accumulated, err)
		restarts++
		reportProgress()

		backoff := time.Duration(restarts) * options.RestartBackoff
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// consumeSnapshots drains one listener session. It returns nil when the
// context ends and the terminal error otherwise.
func (d *FirestoreDataStore[T]) consumeSnapshots(
	ctx context.Context,
	q firestore.Query,
	idField string,
	resultCh chan<- storagemodels.StreamResult[T],
	itemIndex *int64,
	snapshotNumber *int,
	reportProgress func(),
) error {
	it := q.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		*snapshotNumber++

		for _, change := range snap.Changes {
			result := d.processChange(change, snap.ReadTime, atomic.LoadInt64(itemIndex), *snapshotNumber, idField)
			atomic.AddInt64(itemIndex, 1)

			select {
			case <-ctx.Done():
				return nil
			case resultCh <- result:
			}
		}

		reportProgress()
	}
}

// processChange converts a document change into a typed stream result.
func (d *FirestoreDataStore[T]) processChange(
	change firestore.DocumentChange,
	readTime time.Time,
	index int64,
	snapshotNumber int,
	idField string,
) storagemodels.StreamResult[T] {
	meta := storagemodels.StreamMeta{
		Index:          index,
		SnapshotNumber: snapshotNumber,
		ReadTime:       readTime,
	}

	result := storagemodels.StreamResult[T]{
		Kind: changeKind(change.Kind),
		Raw:  change.Doc,
		Meta: meta,
	}

	decoded, err := decodeSnapshot[T](change.Doc, idField)
	if err != nil {
		result.Error = err
		return result
	}
	result.Item = *decoded
	return result
}

// changeKind maps the client's change kind onto the storagemodels kind.
func changeKind(kind firestore.DocumentChangeKind) storagemodels.ChangeKind {
	switch kind {
	case firestore.DocumentAdded:
		return storagemodels.ChangeAdded
	case firestore.DocumentModified:
		return storagemodels.ChangeModified
	case firestore.DocumentRemoved:
		return storagemodels.ChangeRemoved
	}
	return storagemodels.ChangeAdded
}
