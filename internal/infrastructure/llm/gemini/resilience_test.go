package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genai"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

func TestClassifyGenAIErrorRetriesServerStatus(t *testing.T) {
	err := fmt.Errorf("call: %w", genai.APIError{Code: http.StatusServiceUnavailable, Message: "unavailable"})
	class := classifyGenAIError(err)
	if !class.Retryable || !class.RecordFailure {
		t.Fatalf("expected retryable recorded failure, got %+v", class)
	}
}

func TestClassifyGenAIErrorDoesNotRetryClientStatus(t *testing.T) {
	err := fmt.Errorf("call: %w", genai.APIError{Code: http.StatusBadRequest, Message: "bad request"})
	class := classifyGenAIError(err)
	if class.Retryable {
		t.Fatalf("expected non-retryable, got %+v", class)
	}
}

func TestClassifyGenAIErrorIgnoresCancellation(t *testing.T) {
	class := classifyGenAIError(context.Canceled)
	if class.Retryable || class.RecordFailure {
		t.Fatalf("expected cancellation excluded from breaker accounting, got %+v", class)
	}
}

func TestWrapGenAIErrorMapsPermissionDenied(t *testing.T) {
	err := wrapGenAIError("model.classify", fmt.Errorf("call: %w", genai.APIError{Code: http.StatusForbidden, Message: "denied"}))
	if !domain.IsKind(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication kind, got %v", err)
	}
}

func TestWrapGenAIErrorMarksTransientTemporary(t *testing.T) {
	err := wrapGenAIError("model.answer", fmt.Errorf("call: %w", genai.APIError{Code: http.StatusTooManyRequests, Message: "quota"}))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", err)
	}
}

func TestWrapGenAIErrorPassesThroughOther(t *testing.T) {
	cause := errors.New("schema rejected")
	err := wrapGenAIError("model.answer", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
	if domain.IsKind(err, domain.ErrTemporary) || domain.IsKind(err, domain.ErrAuthentication) {
		t.Fatalf("expected no taxonomy kind attached, got %v", err)
	}
}
