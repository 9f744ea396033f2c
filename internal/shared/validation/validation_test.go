package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string `validate:"required"`
	Notes string `validate:"max=5"`
	Kind  string `validate:"omitempty,oneof=a b"`
}

func TestStructMessages(t *testing.T) {
	if err := Struct(sample{Name: "x", Notes: "ok", Kind: "a"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := Struct(sample{Notes: "too long", Kind: "c"})
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"Name is required", "Notes must be at most 5 characters", "Kind must be one of a b"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}
