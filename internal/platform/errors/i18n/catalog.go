// Package i18n renders error-code messages from the "errors" namespace of the
// locale catalogs. Messages are text/template strings over error metadata.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/polycoder/tenants/internal/platform/i18n/catalog"
)

// Namespace is the catalog namespace holding error-code messages.
const Namespace = "errors"

// Catalog renders error codes for one negotiated locale.
type Catalog struct {
	bundle *i18ncatalog.Bundle
	locale string
}

// parsed caches compiled templates by their source text.
var parsed sync.Map

// New returns a Catalog for the best match of locale in bundle. A nil bundle
// uses the embedded catalogs.
func New(bundle *i18ncatalog.Bundle, locale string) *Catalog {
	if bundle == nil {
		bundle = i18ncatalog.Default()
	}
	return &Catalog{bundle: bundle, locale: bundle.Match(locale)}
}

// GetCatalog returns the embedded-catalog Catalog for locale.
func GetCatalog(locale string) *Catalog {
	return New(nil, locale)
}

// Locale returns the negotiated locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders code with metadata. Codes the locale lacks use the base
// locale message; unknown codes render as the code itself. A template that
// fails to parse or execute renders its raw text.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	code = strings.TrimSpace(code)
	text, ok := c.bundle.Message(c.locale, code)
	if !ok {
		return code
	}
	tmpl, err := compile(text)
	if err != nil {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return text
	}
	return buf.String()
}

func compile(text string) (*template.Template, error) {
	if cached, ok := parsed.Load(text); ok {
		return cached.(*template.Template), nil
	}
	tmpl, err := template.New("error").Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, err
	}
	actual, _ := parsed.LoadOrStore(text, tmpl)
	return actual.(*template.Template), nil
}
