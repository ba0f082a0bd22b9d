package vertexrag

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
	"github.com/hayden-cardwell/vertex-rag-assistant/internal/infrastructure/resilience"
)

// classifyRPCError maps gRPC status codes onto retry and breaker
// behavior. Caller cancellation never counts against the breaker.
func classifyRPCError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	st, ok := status.FromError(err)
	if !ok {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: true,
		}
	}
	switch st.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Internal, codes.Aborted:
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	default:
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: true,
		}
	}
}

// wrapRPCError attaches the taxonomy kind for the failed operation.
// Credential failures override the operation kind so callers can treat
// them as fatal.
func wrapRPCError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.PermissionDenied, codes.Unauthenticated:
			return domain.WrapError(domain.ErrAuthentication, operation, err)
		}
	}
	return domain.WrapError(kind, operation, err)
}
