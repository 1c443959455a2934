package descriptor

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const (
	// TitleMinimumLength is the shortest accepted title, in UTF-16 code units.
	TitleMinimumLength = 5
	// TitleMaximumLength is the longest accepted title, in UTF-16 code units.
	TitleMaximumLength = 80
)

// FieldTitle names the title field in validation failures.
const FieldTitle = "Title"

// ValidationFailure pairs a rejected field with a localized message.
type ValidationFailure struct {
	Field   string
	Message string
}

func (f ValidationFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidationFailures is the full set of rules a command violated.
type ValidationFailures []ValidationFailure

func (fs ValidationFailures) Error() string {
	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		parts = append(parts, f.Error())
	}
	return strings.Join(parts, "; ")
}

// Fields returns the distinct failed field names in first-seen order.
func (fs ValidationFailures) Fields() []string {
	seen := make(map[string]struct{}, len(fs))
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		out = append(out, f.Field)
	}
	return out
}

// Validate returns every rule cmd violates. A nil result means cmd may become
// an event.
//
// A blank title (empty or whitespace only) reports only the required failure;
// the length rules are evaluated on the raw title otherwise and do not
// short-circuit each other.
func Validate(cmd Command, templates MessageTemplates) ValidationFailures {
	switch c := cmd.(type) {
	case CreateCommand:
		return validateTitle(c.Title, templates)
	case UpdateCommand:
		return validateTitle(c.Title, templates)
	case DeleteCommand:
		return nil
	default:
		panic(fmt.Sprintf("descriptor: unhandled command %T", cmd))
	}
}

func validateTitle(title string, templates MessageTemplates) ValidationFailures {
	if strings.TrimSpace(title) == "" {
		return ValidationFailures{{
			Field:   FieldTitle,
			Message: templates.IsRequiredFormat(templates.Title()),
		}}
	}

	var failures ValidationFailures
	length := titleLength(title)
	if length < TitleMinimumLength {
		failures = append(failures, ValidationFailure{
			Field:   FieldTitle,
			Message: templates.MustNotBeShorterThanFormat(TitleMinimumLength, templates.Title()),
		})
	}
	if length > TitleMaximumLength {
		failures = append(failures, ValidationFailure{
			Field:   FieldTitle,
			Message: templates.MustNotBeLongerThanFormat(TitleMaximumLength, templates.Title()),
		})
	}
	return failures
}

// titleLength counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice.
func titleLength(title string) int {
	return len(utf16.Encode([]rune(title)))
}
