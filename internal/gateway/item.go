package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ErrUnrecognizedItem is returned when a backend item is neither mapping-shaped
// nor an object exposing a URL.
var ErrUnrecognizedItem = errors.New("unrecognized result item")

// MapItem is a mapping-shaped result item with a "url" key and an optional
// "occurrences" key.
type MapItem map[string]any

// Locator is implemented by object-shaped result items.
type Locator interface {
	ResultURL() string
}

// Counter is optionally implemented by object-shaped result items that carry
// an occurrence count.
type Counter interface {
	ResultOccurrences() int
}

// Result is the canonical record returned to callers.
// Occurrences is nil only for mapping-shaped items that did not carry one.
type Result struct {
	URL         string `json:"url"`
	Occurrences *int   `json:"occurrences"`
}

// rawItem is the closed set of item shapes a backend may produce.
type rawItem interface {
	extract() (Result, error)
}

type mappingItem map[string]any

type objectItem struct {
	Locator
}

func classify(v any) (rawItem, error) {
	switch it := v.(type) {
	case MapItem:
		return mappingItem(it), nil
	case map[string]any:
		return mappingItem(it), nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnrecognizedItem)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("%w: nil %T", ErrUnrecognizedItem, v)
	}
	if l, ok := v.(Locator); ok {
		return objectItem{l}, nil
	}
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		m := make(mappingItem, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnrecognizedItem, v)
}

func (m mappingItem) extract() (Result, error) {
	u, ok := m["url"].(string)
	if !ok {
		return Result{}, fmt.Errorf("%w: mapping without string url", ErrUnrecognizedItem)
	}

	raw, present := m["occurrences"]
	if !present || raw == nil {
		// No default here, unlike objectItem.
		return Result{URL: u}, nil
	}

	n, err := toCount(raw)
	if err != nil {
		return Result{}, err
	}
	return Result{URL: u, Occurrences: &n}, nil
}

func (o objectItem) extract() (res Result, err error) {
	// Pointer receivers may still dereference nil fields.
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, fmt.Errorf("%w: %T: %v", ErrUnrecognizedItem, o.Locator, r)
		}
	}()

	n := 1
	if c, ok := o.Locator.(Counter); ok {
		n = c.ResultOccurrences()
		if n < 0 {
			return Result{}, fmt.Errorf("%w: negative occurrences %d", ErrUnrecognizedItem, n)
		}
	}
	return Result{URL: o.ResultURL(), Occurrences: &n}, nil
}

// toCount accepts any integral numeric value that fits in an int.
func toCount(v any) (int, error) {
	if x, ok := v.(json.Number); ok {
		i, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: occurrences %q: %v", ErrUnrecognizedItem, x, err)
		}
		return checkCount(i)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return checkCount(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, fmt.Errorf("%w: occurrences %d out of range", ErrUnrecognizedItem, u)
		}
		return int(u), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: non-integer occurrences %v", ErrUnrecognizedItem, f)
		}
		if f < 0 {
			return 0, fmt.Errorf("%w: negative occurrences %v", ErrUnrecognizedItem, f)
		}
		if f >= math.MaxInt {
			return 0, fmt.Errorf("%w: occurrences %v out of range", ErrUnrecognizedItem, f)
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("%w: occurrences of type %T", ErrUnrecognizedItem, v)
}

func checkCount(i int64) (int, error) {
	if i < 0 {
		return 0, fmt.Errorf("%w: negative occurrences %d", ErrUnrecognizedItem, i)
	}
	if i > math.MaxInt {
		return 0, fmt.Errorf("%w: occurrences %d out of range", ErrUnrecognizedItem, i)
	}
	return int(i), nil
}
