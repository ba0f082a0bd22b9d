package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hayden-cardwell/vertex-rag-assistant/internal/core/domain"
)

func TestPipelineMetricsExposesRecordedSamples(t *testing.T) {
	m := NewPipelineMetrics("ask")
	m.RecordClassification(domain.QuestionSpecific)
	m.RecordRetrieval(3, 120*time.Millisecond)
	m.RecordAnswer(true)
	m.RecordRun(domain.StateAnswered, 800*time.Millisecond)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body := recorder.Body.String()
	for _, metric := range []string{
		"vra_pipeline_classifications_total",
		"vra_retrieval_duration_seconds",
		"vra_pipeline_answers_total",
		"vra_pipeline_run_duration_seconds",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %s in exposition, got:\n%s", metric, body)
		}
	}
}

func TestPipelineMetricsRecordsFailureKind(t *testing.T) {
	m := NewPipelineMetrics("ask")
	m.RecordFailure(domain.WrapError(domain.ErrRetrieval, "retrieve", domain.ErrTemporary))

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(recorder.Body.String(), `kind="retrieval"`) {
		t.Fatalf("expected retrieval failure kind, got:\n%s", recorder.Body.String())
	}
}
