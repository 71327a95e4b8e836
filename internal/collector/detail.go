package collector

import (
	"context"
	"errors"
	"fmt"

	"glances-hub/internal/glances"
	"glances-hub/internal/model"
)

var ErrHostNotFound = errors.New("server not found")

// InternalError is any detail failure that is neither a lookup miss nor a
// classified fetch failure.
type InternalError struct {
	Detail string
	Err    error
}

func (e *InternalError) Error() string {
	return e.Detail
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func internalError(cause any, err error) *InternalError {
	return &InternalError{Detail: fmt.Sprintf("Error retrieving server details: %v", cause), Err: err}
}

// Detail returns the unmodified Glances document for one host. Errors are
// ErrHostNotFound, *glances.FetchError or *InternalError.
func (a *Aggregator) Detail(ctx context.Context, id string) (rec model.RawRecord, err error) {
	ep, ok := a.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHostNotFound, id)
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("host detail panicked", "host", id, "panic", r)
			rec, err = nil, internalError(r, nil)
		}
	}()

	raw, fetchErr := a.fetcher.Fetch(ctx, ep.BaseURL)
	if fetchErr != nil {
		var fe *glances.FetchError
		if errors.As(fetchErr, &fe) {
			a.logger.Warn("host detail fetch failed", "host", id, "kind", fe.Kind, "error", fetchErr)
			return nil, fe
		}
		return nil, internalError(fetchErr, fetchErr)
	}
	if raw == nil {
		return nil, internalError("empty record", nil)
	}
	return raw, nil
}
