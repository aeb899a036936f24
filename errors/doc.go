/*
Package errors provides semantic error types for the Firestore ORM.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("document not found")
	    ErrAlreadyExists   = errors.New("document already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrNoCollectionMap = errors.New("no collection map found for type")
	)

Usage:

	// Check error type
	user, err := store.GetOne(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("user %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("User", "123")
	err := errors.NewValidationError("email", "invalid format")
	err := errors.NewConditionFailedError("update", "document version changed")

FromStatus translates errors raised by the Firestore client into this
taxonomy using their gRPC status codes, so callers can handle
codes.NotFound or codes.Aborted without importing grpc packages.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
