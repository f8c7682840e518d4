package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	v := Validation("answers.save", "value kind %s not accepted", "text")
	if !IsValidation(v) || IsNotFound(v) || IsStorage(v) {
		t.Fatalf("validation error misclassified")
	}
	if PublicMessage(v) != "value kind text not accepted" {
		t.Fatalf("unexpected public message: %q", PublicMessage(v))
	}

	nf := fmt.Errorf("wrapped: %w", NotFound("tables.list", "entity %q not found", "dogs"))
	if !IsNotFound(nf) {
		t.Fatalf("expected wrapped not found to be detected")
	}
}

func TestStorage(t *testing.T) {
	if Storage("op", nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}

	cause := errors.New("connection reset")
	err := Storage("answers.save", cause)
	if !IsStorage(err) {
		t.Fatalf("expected storage kind")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be unwrappable")
	}
	if again := Storage("outer", err); again != err {
		t.Fatalf("expected storage errors not to be double wrapped")
	}
	if got := err.Error(); got != "answers.save: storage failure: connection reset" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestKindOf_Plain(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no kind")
	}
}
