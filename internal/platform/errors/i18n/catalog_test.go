package i18n

import (
	"testing"
	"testing/fstest"

	i18ncatalog "github.com/polycoder/tenants/internal/platform/i18n/catalog"
)

func testBundle(t *testing.T) *i18ncatalog.Bundle {
	t.Helper()
	bundle, err := i18ncatalog.LoadFromFS(fstest.MapFS{
		"locales/en-US/errors.yaml": {Data: []byte(`locale: "en-US"
namespace: "errors"
messages:
  "TENANT_NOT_FOUND": "Tenant {{.TenantID}} was not found."
  "TENANT_VERSION_CONFLICT": "Tenant {{.TenantID}} changed."
  "BROKEN_PARSE": "{{ if .TenantID }}"
  "BROKEN_EXEC": "{{ call .TenantID }}"
`)},
		"locales/pt-BR/errors.yaml": {Data: []byte(`locale: "pt-BR"
namespace: "errors"
messages:
  "TENANT_NOT_FOUND": "O tenant {{.TenantID}} não foi encontrado."
`)},
	})
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

func TestFormatLocalizedWithBaseFallback(t *testing.T) {
	cat := New(testBundle(t), "pt-BR")
	if cat.Locale() != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", cat.Locale())
	}
	metadata := map[string]string{"TenantID": "t-1"}
	if got := cat.Format("TENANT_NOT_FOUND", metadata); got != "O tenant t-1 não foi encontrado." {
		t.Fatalf("pt-BR = %q", got)
	}
	if got := cat.Format("TENANT_VERSION_CONFLICT", metadata); got != "Tenant t-1 changed." {
		t.Fatalf("base fallback = %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := New(testBundle(t), "en-US")
	if got := cat.Format("TENANT_UNKNOWN", nil); got != "TENANT_UNKNOWN" {
		t.Fatalf("unknown code = %q", got)
	}
	if got := cat.Format("TENANT_NOT_FOUND", nil); got != "Tenant  was not found." {
		t.Fatalf("missing metadata = %q", got)
	}
	if got := cat.Format("BROKEN_PARSE", map[string]string{"TenantID": "t-1"}); got != "{{ if .TenantID }}" {
		t.Fatalf("parse error = %q", got)
	}
	if got := cat.Format("BROKEN_EXEC", map[string]string{"TenantID": "t-1"}); got != "{{ call .TenantID }}" {
		t.Fatalf("exec error = %q", got)
	}
}

func TestNewNegotiatesUnsupportedLocale(t *testing.T) {
	cat := New(testBundle(t), "fr-FR")
	if cat.Locale() != i18ncatalog.BaseLocale {
		t.Fatalf("locale = %q, want %s", cat.Locale(), i18ncatalog.BaseLocale)
	}
}

func TestGetCatalogUsesEmbeddedCatalogs(t *testing.T) {
	cat := GetCatalog("pt-BR")
	if got := cat.Format("TENANT_ALREADY_EXISTS", map[string]string{"TenantID": "t-1"}); got != "O tenant t-1 já existe." {
		t.Fatalf("pt-BR = %q", got)
	}
	// es-ES ships tenant strings only; error codes use the base locale.
	if got := GetCatalog("es-ES").Format("TENANT_NOT_FOUND", map[string]string{"TenantID": "t-1"}); got != "Tenant t-1 was not found." {
		t.Fatalf("es-ES = %q", got)
	}
}
