package efiguid

import (
	"errors"
	"fmt"
)

// ErrMalformed is matched by every error returned from Parse.
var ErrMalformed = errors.New("malformed GUID")

// FormatError describes why a GUID text could not be parsed. Offset is the
// position of the offending byte in Input, or -1 when the problem is the
// overall length.
type FormatError struct {
	Input  string
	Offset int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("incorrect GUID %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("incorrect GUID %q: %s at offset %d", e.Input, e.Reason, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return ErrMalformed
}
