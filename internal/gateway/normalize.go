package gateway

import "fmt"

// Normalize converts a single backend item into a Result.
func Normalize(item any) (Result, error) {
	it, err := classify(item)
	if err != nil {
		return Result{}, err
	}
	return it.extract()
}

// NormalizeAll normalizes items in order. The first unrecognized item fails the
// whole list; partial results are never returned.
func NormalizeAll(items []any) ([]Result, error) {
	out := make([]Result, 0, len(items))
	for i, item := range items {
		r, err := Normalize(item)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}
