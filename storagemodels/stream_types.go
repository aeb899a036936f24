package storagemodels

import (
	"time"

	"cloud.google.com/go/firestore"
)

// ChangeKind describes how a document changed within a snapshot.
type ChangeKind int

const (
	// ChangeAdded indicates the document entered the result set.
	ChangeAdded ChangeKind = iota
	// ChangeModified indicates the document data changed.
	ChangeModified
	// ChangeRemoved indicates the document left the result set.
	ChangeRemoved
)

// String returns a human-readable change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	}
	return "unknown"
}

// StreamResult represents a single document change in a snapshot stream.
type StreamResult[T any] struct {
	Item  T                           // The decoded document
	Kind  ChangeKind                  // How the document changed
	Raw   *firestore.DocumentSnapshot // Raw Firestore snapshot
	Error error                       // Item-specific error, if any
	Meta  StreamMeta                  // Metadata about this item
}

// StreamMeta contains metadata about a streamed item
type StreamMeta struct {
	Index          int64     // Item index in stream (0-based)
	SnapshotNumber int       // Query snapshot number (1-based)
	ReadTime       time.Time // Snapshot read time
}

// StreamOptions configures snapshot streaming behavior
type StreamOptions struct {
	BufferSize      int                  // Channel buffer size (default: 100)
	MaxRestarts     int                  // Listener restarts after terminal errors (default: 3)
	RestartBackoff  time.Duration        // Backoff between restarts (default: 1s)
	ProgressHandler func(StreamProgress) // Optional progress callback
	ErrorHandler    func(error) bool     // Return true to continue, false to stop
}

// StreamProgress tracks snapshot streaming progress
type StreamProgress struct {
	ItemsProcessed     int64     // Total document changes processed
	SnapshotsProcessed int       // Total query snapshots processed
	Restarts           int       // Listener restarts so far
	Errors             []error   // Accumulated non-fatal errors
	StartTime          time.Time // When streaming started
	CurrentRate        float64   // Items per second
}

// StreamOption is a functional option for configuring streaming
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize:     100,
		MaxRestarts:    3,
		RestartBackoff: time.Second,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithMaxRestarts sets the maximum listener restarts
func WithMaxRestarts(restarts int) StreamOption {
	return func(opts *StreamOptions) {
		opts.MaxRestarts = restarts
	}
}

// WithRestartBackoff sets the backoff between listener restarts
func WithRestartBackoff(backoff time.Duration) StreamOption {
	return func(opts *StreamOptions) {
		opts.RestartBackoff = backoff
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}

// WithErrorHandler sets an error handler that can decide whether to continue
func WithErrorHandler(handler func(error) bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.ErrorHandler = handler
	}
}
