package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestCaptureWriterBuffersWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 64}

	if _, err := cw.Write([]byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := cw.Write([]byte(`{"b":2}`)); err != nil {
		t.Fatal(err)
	}

	if cw.skipped {
		t.Fatal("writes within the limit must not mark the buffer partial")
	}
	if got := cw.buf.String(); got != `{"a":1}{"b":2}` {
		t.Fatalf("buffer = %q, want full body", got)
	}
	if got := rec.Body.String(); got != `{"a":1}{"b":2}` {
		t.Fatalf("client body = %q, want full body", got)
	}
}

func TestCaptureWriterMarksPartialBodies(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 10}

	first := []byte(`{"rows":[`)
	second := []byte(`{"id":1}]}`)
	if _, err := cw.Write(first); err != nil {
		t.Fatal(err)
	}
	if _, err := cw.Write(second); err != nil {
		t.Fatal(err)
	}

	// The second chunk crossed the limit, so the buffer is missing the
	// tail of the response and must be flagged unusable for caching.
	if !cw.skipped {
		t.Fatal("oversized multi-write body must be marked partial")
	}
	if cw.buf.Len() != len(first) {
		t.Fatalf("buffer holds %d bytes, want only the first chunk (%d)", cw.buf.Len(), len(first))
	}
	if got, want := rec.Body.Len(), len(first)+len(second); got != want {
		t.Fatalf("client body = %d bytes, want %d; truncation must never reach the client", got, want)
	}
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 0}

	big := make([]byte, 1<<16)
	if _, err := cw.Write(big); err != nil {
		t.Fatal(err)
	}
	if cw.skipped || cw.buf.Len() != len(big) {
		t.Fatalf("limit 0 means unbounded capture; skipped=%v len=%d", cw.skipped, cw.buf.Len())
	}
}
