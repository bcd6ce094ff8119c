package apperr

import (
	"errors"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, 404},
		{KindValidation, 400},
		{KindConfig, 400},
		{KindLLM, 502},
		{KindScan, 500},
		{KindTool, 500},
	}

	for _, tc := range cases {
		err := New(tc.kind, "code", "message")
		if got := err.HTTPStatus(); got != tc.want {
			t.Errorf("kind %s: expected status %d, got %d", tc.kind, tc.want, got)
		}
	}
}

func TestWrapPreservesCauseAndUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindScan, "scan_failed", "could not read file", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
	if err.Error() == "" {
		t.Error("expected a non-empty error string")
	}
}

func TestLLMErrIsRetryableByDefault(t *testing.T) {
	err := LLMErr("llm_timeout", "provider timed out", errors.New("timeout"))
	if !err.Retryable {
		t.Error("expected LLMErr to default to retryable")
	}
}

func TestWithDetailAndWithRetryableChain(t *testing.T) {
	err := Validation("bad_input", "missing field").
		WithDetail("field", "projectPath").
		WithRetryable(false)

	if err.Details["field"] != "projectPath" {
		t.Errorf("expected detail to be recorded, got %+v", err.Details)
	}
	if err.Retryable {
		t.Error("expected WithRetryable(false) to stick")
	}
}

func TestErrorsAsRecoversConcreteType(t *testing.T) {
	var wrapped error = NotFound("check_not_found", "no such check")

	var target *Error
	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to recover the *Error concrete type")
	}
	if target.Kind != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", target.Kind)
	}
}

func TestAggregatorCollectsAndIgnoresNil(t *testing.T) {
	var agg Aggregator
	agg.Add(nil)
	if agg.HasErrors() {
		t.Fatal("expected a nil error to be ignored")
	}

	agg.Add(ScanErr("scan_failed", "boom", errors.New("x")))
	agg.Add(ToolErr("tool_failed", "bang", errors.New("y")))

	if !agg.HasErrors() {
		t.Fatal("expected HasErrors to be true after adding errors")
	}
	if len(agg.Errors()) != 2 {
		t.Fatalf("expected 2 collected errors, got %d", len(agg.Errors()))
	}
	if agg.Error() == "" {
		t.Error("expected a non-empty aggregate error message")
	}
}
