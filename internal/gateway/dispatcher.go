package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
)

// ReasonUnavailable is the fallback reason when no backend was configured.
const ReasonUnavailable = "backend unavailable"

var (
	ErrEmptyResults = errors.New("empty results returned")
	ErrNotSequence  = errors.New("backend result is not a sequence")
)

// Backend is an external search capability. Run may block for as long as the
// backend needs; it may fail or return an empty sequence.
type Backend interface {
	Run(ctx context.Context, query string) (any, error)
}

// Dispatcher sends a query to the backend once and falls back to the
// deterministic result set on any failure.
type Dispatcher struct {
	backend Backend
}

// NewDispatcher creates a dispatcher. backend may be nil, in which case every
// query is answered from the fallback set.
func NewDispatcher(backend Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

// Available reports whether a backend was configured.
func (d *Dispatcher) Available() bool {
	return d.backend != nil
}

// Dispatch never fails: backend errors, empty results and non-sequence
// results all produce a FallbackUsed outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) Outcome {
	rid := RequestIDFrom(ctx)

	if d.backend == nil {
		log.Printf("[Dispatcher] %s: %s, returning fallback results", rid, ReasonUnavailable)
		return fallbackUsed(query, ReasonUnavailable)
	}

	results, err := d.run(ctx, query)
	if err != nil {
		log.Printf("[Dispatcher] %s: backend failed, using fallback: %v", rid, err)
		return fallbackUsed(query, err.Error())
	}

	log.Printf("[Dispatcher] %s: backend returned %d results", rid, len(results))
	return backendSuccess(results)
}

// Search dispatches query and normalizes whatever came back.
func (d *Dispatcher) Search(ctx context.Context, query string) ([]Result, Outcome, error) {
	outcome := d.Dispatch(ctx, query)
	results, err := NormalizeAll(outcome.Results())
	if err != nil {
		return nil, outcome, err
	}
	return results, outcome, nil
}

func (d *Dispatcher) run(ctx context.Context, query string) (results []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, fmt.Errorf("backend panic: %v", r)
		}
	}()

	raw, err := d.backend.Run(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err = asSequence(raw)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrEmptyResults
	}
	return results, nil
}

func asSequence(v any) ([]any, error) {
	switch s := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotSequence)
	case []any:
		return s, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T", ErrNotSequence, v)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
