package coverage

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/polycoder/tenants/internal/platform/i18n/catalog"
)

func testBundle(t *testing.T) *catalog.Bundle {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en-US/tenants.yaml": {Data: []byte(`locale: "en-US"
namespace: "tenants"
messages:
  "tenants.title": "Title"
  "tenants.validation.is_required": "%s is required."
`)},
		"locales/pt-BR/tenants.yaml": {Data: []byte(`locale: "pt-BR"
namespace: "tenants"
messages:
  "tenants.title": "Título"
  "tenants.extra": "Extra"
`)},
	}
	bundle, err := catalog.LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

func TestBuildReportsMissingAndExtraKeys(t *testing.T) {
	rep, err := Build(testBundle(t), catalog.BaseLocale)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rep.Locales) != 2 {
		t.Fatalf("expected 2 locales, got %d", len(rep.Locales))
	}
	base := rep.Locales[0]
	if base.Locale != "en-US" || base.Completion != 100 || base.Missing() != 0 {
		t.Fatalf("unexpected base status %+v", base)
	}

	pt := rep.Locales[1]
	if pt.Locale != "pt-BR" {
		t.Fatalf("expected pt-BR second, got %q", pt.Locale)
	}
	if !reflect.DeepEqual(pt.MissingKeys, []string{"tenants.validation.is_required"}) {
		t.Fatalf("missing keys = %v", pt.MissingKeys)
	}
	if !reflect.DeepEqual(pt.ExtraKeys, []string{"tenants.extra"}) {
		t.Fatalf("extra keys = %v", pt.ExtraKeys)
	}
	if pt.Completion != 50 {
		t.Fatalf("completion = %v, want 50", pt.Completion)
	}
	if len(pt.Namespaces) != 1 || pt.Namespaces[0].Missing != 1 || pt.Namespaces[0].Extra != 1 {
		t.Fatalf("unexpected namespace status %+v", pt.Namespaces)
	}
}

func TestBuildRequiresBaseLocale(t *testing.T) {
	if _, err := Build(testBundle(t), "fr-FR"); err == nil {
		t.Fatal("expected error for unknown base locale")
	}
	if _, err := Build(nil, catalog.BaseLocale); err == nil {
		t.Fatal("expected error for nil bundle")
	}
}

func TestWriteTable(t *testing.T) {
	rep, err := Build(testBundle(t), catalog.BaseLocale)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, rep); err != nil {
		t.Fatalf("write table: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "LOCALE") {
		t.Fatalf("expected header first, got %q", out)
	}
	if !strings.Contains(out, "50.0%") {
		t.Fatalf("expected pt-BR completion in table, got %q", out)
	}
	if !strings.Contains(out, "missing pt-BR tenants.validation.is_required\n") {
		t.Fatalf("expected missing key line, got %q", out)
	}
}

func TestEmbeddedCatalogsTranslateTenantMessages(t *testing.T) {
	rep, err := Build(catalog.Default(), catalog.BaseLocale)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, locale := range rep.Locales {
		for _, ns := range locale.Namespaces {
			if ns.Namespace == "tenants" && ns.Missing != 0 {
				t.Fatalf("%s is missing %d tenants messages", locale.Locale, ns.Missing)
			}
		}
	}
}
