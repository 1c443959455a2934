package i18n

import (
	"strings"
	"testing"

	"github.com/polycoder/tenants/internal/services/tenants/domain/descriptor"
)

func TestStringsEnglish(t *testing.T) {
	s := New(nil, "en-US")
	if got := s.Title(); got != "Title" {
		t.Fatalf("Title() = %q", got)
	}
	if got := s.IsRequiredFormat(s.Title()); got != "Title is required." {
		t.Fatalf("IsRequiredFormat = %q", got)
	}
	if got := s.MustNotBeShorterThanFormat(5, s.Title()); got != "Title must not be shorter than 5 characters." {
		t.Fatalf("MustNotBeShorterThanFormat = %q", got)
	}
	if got := s.MustNotBeLongerThanFormat(80, s.Title()); got != "Title must not be longer than 80 characters." {
		t.Fatalf("MustNotBeLongerThanFormat = %q", got)
	}
}

func TestStringsPortuguese(t *testing.T) {
	s := New(nil, "pt-BR")
	if s.Locale() != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", s.Locale())
	}
	if got := s.IsRequiredFormat(s.Title()); got != "Título é obrigatório." {
		t.Fatalf("IsRequiredFormat = %q", got)
	}
}

func TestStringsUnknownLocaleFallsBack(t *testing.T) {
	s := New(nil, "ja-JP")
	if s.Locale() != "en-US" {
		t.Fatalf("locale = %q, want en-US", s.Locale())
	}
}

func TestStringsDriveValidation(t *testing.T) {
	failures := descriptor.Validate(descriptor.CreateCommand{Title: strings.Repeat("x", 81)}, New(nil, "es-ES"))
	if len(failures) != 1 {
		t.Fatalf("failures = %v, want one", failures)
	}
	if failures[0].Message != "Título no puede tener más de 80 caracteres." {
		t.Fatalf("message = %q", failures[0].Message)
	}
}
