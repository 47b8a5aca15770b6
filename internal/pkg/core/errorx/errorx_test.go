package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	kind := New(400, "not_claimable")
	wrapped := Wrap(kind, fmt.Errorf("row lock wait timeout"))

	if !errors.Is(wrapped, kind) {
		t.Error("errors.Is() should match wrapped error of the same kind")
	}

	other := New(400, "already_claimed")
	if errors.Is(wrapped, other) {
		t.Error("errors.Is() should not match a different kind")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	wrapped := Wrap(New(503, "unavailable"), cause)

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() should reach the underlying cause")
	}

	want := "unavailable: connection refused"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestKindOfAndCodeOf(t *testing.T) {
	kind := New(404, "not_found")
	wrapped := fmt.Errorf("query: %w", Wrap(kind, nil))

	if got := KindOf(wrapped); got != "not_found" {
		t.Errorf("KindOf() = %q, want %q", got, "not_found")
	}

	if got := CodeOf(wrapped); got != 404 {
		t.Errorf("CodeOf() = %d, want 404", got)
	}

	plain := fmt.Errorf("plain error")
	if got := KindOf(plain); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}

	if got := CodeOf(plain); got != 500 {
		t.Errorf("CodeOf(plain) = %d, want 500", got)
	}
}
