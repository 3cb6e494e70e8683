package cantype

// TypeEvent describes something that happened to a type object.
type TypeEvent struct {
	Policy string // "base", a policy name, or "late"
	Name   string
	Value  any   // the offending value, for mismatches
	Err    error // the resolution failure, for late types
}

// Hooks defines callbacks for factory observability.
// Callbacks run synchronously and must not call back into the factory.
type Hooks struct {
	OnCreate   func(*TypeEvent)
	OnMismatch func(*TypeEvent)
	OnResolve  func(*TypeEvent)
}

func emit(fn func(*TypeEvent), e *TypeEvent) {
	if fn != nil {
		fn(e)
	}
}
