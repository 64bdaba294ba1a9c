package gateway

// Kind tells which path produced an Outcome.
type Kind int

const (
	BackendSuccess Kind = iota
	FallbackUsed
)

func (k Kind) String() string {
	switch k {
	case BackendSuccess:
		return "backend"
	case FallbackUsed:
		return "fallback"
	default:
		return "unknown"
	}
}

// Outcome is the result of one dispatch. Reason is set only for FallbackUsed.
type Outcome struct {
	kind    Kind
	results []any
	reason  string
}

func backendSuccess(results []any) Outcome {
	return Outcome{kind: BackendSuccess, results: results}
}

func fallbackUsed(query, reason string) Outcome {
	return Outcome{kind: FallbackUsed, results: Fallback(query), reason: reason}
}

func (o Outcome) Kind() Kind       { return o.kind }
func (o Outcome) Results() []any   { return o.results }
func (o Outcome) Reason() string   { return o.reason }
func (o Outcome) IsFallback() bool { return o.kind == FallbackUsed }
