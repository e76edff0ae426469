package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Unauthenticated, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{Validation, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{Storage, http.StatusInternalServerError},
		{Unknown, http.StatusInternalServerError},
	}
	for _, c := range cases {
		e := New(c.kind, "x", nil)
		if got := e.Status(); got != c.want {
			t.Fatalf("kind %d: status=%d want=%d", c.kind, got, c.want)
		}
	}
}

func TestFrom_PassesThroughAndClassifiesUnknown(t *testing.T) {
	orig := NewNotFound("code not found", nil)
	if got := From(orig); got != orig {
		t.Fatalf("expected same *Error back, got %v", got)
	}

	// wrapped *Error is still recognized
	wrapped := fmt.Errorf("handler: %w", orig)
	if got := From(wrapped); got.Kind != NotFound {
		t.Fatalf("expected NotFound through wrap, got kind %d", got.Kind)
	}

	plain := errors.New("pg: connection reset")
	got := From(plain)
	if got.Kind != Unknown {
		t.Fatalf("expected Unknown kind, got %d", got.Kind)
	}
	if got.Message != "internal error" {
		t.Fatalf("internal detail leaked into message: %q", got.Message)
	}
	if !errors.Is(got, plain) {
		t.Fatal("underlying error should be preserved for logging")
	}
}

func TestIsKindHelpers(t *testing.T) {
	if !IsNotFound(NewNotFound("gone", nil)) {
		t.Fatal("IsNotFound should match")
	}
	if IsNotFound(NewForbidden("no", nil)) {
		t.Fatal("IsNotFound should not match Forbidden")
	}
	if !IsForbidden(fmt.Errorf("wrap: %w", NewForbidden("no", nil))) {
		t.Fatal("IsForbidden should match through wrapping")
	}
}

func TestErrorString(t *testing.T) {
	e := NewStorage("storage failure", errors.New("dial tcp refused"))
	if e.Error() != "storage failure: dial tcp refused" {
		t.Fatalf("unexpected error string: %q", e.Error())
	}
	e2 := NewValidation("email is required", nil)
	if e2.Error() != "email is required" {
		t.Fatalf("unexpected error string: %q", e2.Error())
	}
}
