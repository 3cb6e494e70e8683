package reflection

import (
	"fmt"

	"github.com/aretw0/cantype/pkg/kind"
)

// ConversionError reports a value that could not be converted to a marker.
type ConversionError struct {
	Value   any
	Target  string
	Reason  string
	Wrapped error
}

func (e *ConversionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("conversion error: cannot convert %s (%s) to %s: %s: %v",
			kind.Format(e.Value), kind.Of(e.Value), e.Target, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("conversion error: cannot convert %s (%s) to %s: %s",
		kind.Format(e.Value), kind.Of(e.Value), e.Target, e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return e.Wrapped
}
