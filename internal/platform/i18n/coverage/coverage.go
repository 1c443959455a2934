// Package coverage reports how completely each locale translates the base
// locale's catalog.
package coverage

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/polycoder/tenants/internal/platform/i18n/catalog"
)

// Report is the translation status of every locale in a bundle.
type Report struct {
	BaseLocale string
	Locales    []LocaleStatus
}

// LocaleStatus summarizes one locale against the base locale.
type LocaleStatus struct {
	Locale      string
	BaseKeys    int
	Translated  int
	Extra       int
	Completion  float64
	Namespaces  []NamespaceStatus
	MissingKeys []string
	ExtraKeys   []string
}

// Missing is the number of base keys the locale lacks.
func (s LocaleStatus) Missing() int {
	return len(s.MissingKeys)
}

// NamespaceStatus summarizes one namespace of a locale.
type NamespaceStatus struct {
	Namespace  string
	BaseKeys   int
	Translated int
	Missing    int
	Extra      int
	Completion float64
}

// Build compares every locale in bundle with baseLocale.
func Build(bundle *catalog.Bundle, baseLocale string) (Report, error) {
	if bundle == nil {
		return Report{}, fmt.Errorf("catalog bundle is required")
	}
	if !bundle.HasLocale(baseLocale) {
		return Report{}, fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}
	baseMessages := bundle.LocaleMessages(baseLocale)
	baseNamespaces := bundle.Namespaces(baseLocale)

	locales := bundle.Locales()
	statuses := make([]LocaleStatus, 0, len(locales))
	for _, locale := range locales {
		localeMessages := bundle.LocaleMessages(locale)
		missing := diffKeys(baseMessages, localeMessages)
		extra := diffKeys(localeMessages, baseMessages)
		translated := len(baseMessages) - len(missing)

		namespaces := unionSorted(baseNamespaces, bundle.Namespaces(locale))
		namespaceStatuses := make([]NamespaceStatus, 0, len(namespaces))
		for _, namespace := range namespaces {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			localeNS := bundle.NamespaceMessages(locale, namespace)
			nsMissing := len(diffKeys(baseNS, localeNS))
			nsTranslated := len(baseNS) - nsMissing
			namespaceStatuses = append(namespaceStatuses, NamespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Missing:    nsMissing,
				Extra:      len(diffKeys(localeNS, baseNS)),
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		statuses = append(statuses, LocaleStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Extra:       len(extra),
			Completion:  percent(translated, len(baseMessages)),
			Namespaces:  namespaceStatuses,
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}
	return Report{BaseLocale: baseLocale, Locales: statuses}, nil
}

// WriteTable renders the per-locale summary followed by missing keys.
func WriteTable(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "LOCALE\tBASE\tTRANSLATED\tMISSING\tEXTRA\tCOMPLETION\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
			locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing(), locale.Extra, locale.Completion)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, locale := range rep.Locales {
		for _, key := range locale.MissingKeys {
			if _, err := fmt.Fprintf(w, "missing %s %s\n", locale.Locale, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// diffKeys returns the sorted keys of a that b lacks.
func diffKeys(a, b map[string]string) []string {
	out := make([]string, 0)
	for key := range a {
		if _, ok := b[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func unionSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
