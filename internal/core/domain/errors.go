package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrExtraction         = errors.New("extraction failed")
	ErrEmptyDocument      = errors.New("document has no text layer")
	ErrConfiguration      = errors.New("missing configuration")
	ErrServiceUnavailable = errors.New("categorization service unavailable")
	ErrTimeout            = errors.New("pipeline deadline exceeded")
	ErrMalformedResponse  = errors.New("malformed service response")
	ErrSchema             = errors.New("response schema violation")
	ErrRender             = errors.New("report rendering failed")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
