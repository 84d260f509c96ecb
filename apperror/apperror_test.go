package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad input"), 400},
		{Unauthorizedf("no token"), 401},
		{Forbiddenf("no access"), 403},
		{NotFoundf("missing"), 404},
		{Conflictf("taken"), 409},
		{Internalf("boom"), 500},
		{errors.New("plain"), 500},
		{nil, 500},
	}

	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Fatalf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	err := NotFoundf("booking %d not found", 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match ErrNotFound, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("expected errors.Is not to match ErrConflict")
	}
	if err.Error() != "booking 7 not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("expected sentinel to survive wrapping")
	}
}
