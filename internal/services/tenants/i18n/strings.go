// Package i18n supplies localized tenant validation messages.
package i18n

import (
	"golang.org/x/text/message"

	"github.com/polycoder/tenants/internal/platform/i18n/catalog"
	"github.com/polycoder/tenants/internal/services/tenants/domain/descriptor"
)

// Catalog keys owned by the tenants namespace.
const (
	KeyTitle                = "tenants.title"
	KeyIsRequired           = "tenants.validation.is_required"
	KeyMustNotBeShorterThan = "tenants.validation.must_not_be_shorter_than"
	KeyMustNotBeLongerThan  = "tenants.validation.must_not_be_longer_than"
)

// Strings renders tenant messages for one locale.
type Strings struct {
	locale  string
	printer *message.Printer
}

var _ descriptor.MessageTemplates = (*Strings)(nil)

// New returns Strings for the best available match of locale in bundle.
// A nil bundle uses the embedded default catalogs.
func New(bundle *catalog.Bundle, locale string) *Strings {
	if bundle == nil {
		bundle = catalog.Default()
	}
	resolved := bundle.Match(locale)
	return &Strings{
		locale:  resolved,
		printer: bundle.Printer(resolved),
	}
}

// Locale returns the locale the messages are rendered in.
func (s *Strings) Locale() string {
	return s.locale
}

func (s *Strings) Title() string {
	return s.printer.Sprintf(KeyTitle)
}

func (s *Strings) IsRequiredFormat(whatIsRequired string) string {
	return s.printer.Sprintf(KeyIsRequired, whatIsRequired)
}

func (s *Strings) MustNotBeShorterThanFormat(minimumLength int, whatIsValidated string) string {
	return s.printer.Sprintf(KeyMustNotBeShorterThan, whatIsValidated, minimumLength)
}

func (s *Strings) MustNotBeLongerThanFormat(maximumLength int, whatIsValidated string) string {
	return s.printer.Sprintf(KeyMustNotBeLongerThan, whatIsValidated, maximumLength)
}
