package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load: %w", New(CodeTenantNotFound, "tenant missing"))
	if !stderrors.Is(err, New(CodeTenantNotFound, "")) {
		t.Fatal("expected code match through wrapping")
	}
	if stderrors.Is(err, New(CodeTenantAlreadyExists, "")) {
		t.Fatal("expected code mismatch")
	}
	if got := GetCode(err); got != CodeTenantNotFound {
		t.Fatalf("code = %s, want %s", got, CodeTenantNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("code = %s, want %s", got, CodeUnknown)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "append events", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "append events: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeTenantNotFound, "tenant missing", map[string]string{"TenantID": "t-1"})
	if got := LocalizedMessage(err, "en-US"); got != "Tenant t-1 was not found." {
		t.Fatalf("en-US = %q", got)
	}
	if got := LocalizedMessage(err, "pt-BR"); got != "O tenant t-1 não foi encontrado." {
		t.Fatalf("pt-BR = %q", got)
	}
	if got := LocalizedMessage(stderrors.New("boom"), "en-US"); got != "An unexpected error occurred." {
		t.Fatalf("unknown = %q", got)
	}
}
