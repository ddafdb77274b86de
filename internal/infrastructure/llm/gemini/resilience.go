package gemini

import (
	"context"
	"errors"

	"github.com/gastosuy/statement-analyzer/internal/core/domain"
	"github.com/gastosuy/statement-analyzer/internal/infrastructure/resilience"
)

// classifyGeminiError keeps caller-side cancellation from counting
// against the circuit; every other failure does.
func classifyGeminiError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}
	return resilience.ErrorClassification{RecordFailure: true}
}

// wrapServiceError maps transport failures to the service-unavailable
// kind. Context expiry passes through so the pipeline can attribute it
// to its own wall-clock budget.
func wrapServiceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.WrapError(domain.ErrServiceUnavailable, operation, err)
}
