package scenarioerr

import (
	"strings"
	"testing"
)

func TestError_ErrorStringIncludesCodeAndMessage(t *testing.T) {
	t.Parallel()
	e := New(KindReferential, CodeScenarioNotFound, "no scenario named login")
	if got := e.Error(); !strings.Contains(got, CodeScenarioNotFound) || !strings.Contains(got, "login") {
		t.Fatalf("Error() = %q, want it to contain code and message", got)
	}
}

func TestError_WithDiagnosticAttachesPayload(t *testing.T) {
	t.Parallel()
	e := New(KindPlayback, CodeActionFailed, "click failed")
	e = e.WithDiagnostic(map[string]string{"selector": "#submit"})
	if len(e.Diagnostic) == 0 {
		t.Fatal("expected diagnostic payload to be set")
	}
	if !strings.Contains(string(e.Diagnostic), "submit") {
		t.Fatalf("diagnostic = %s, want it to contain selector", e.Diagnostic)
	}
}

func TestError_RetryableOnlyForStorageIO(t *testing.T) {
	t.Parallel()
	if !New(KindStorage, CodeIOFailed, "disk full").Retryable() {
		t.Error("storage io_failed should be retryable")
	}
	if New(KindReferential, CodeScenarioNotFound, "x").Retryable() {
		t.Error("referential errors should not be retryable")
	}
	if New(KindPlayback, CodeActionFailed, "x").Retryable() {
		t.Error("playback errors should not be retryable")
	}
}
