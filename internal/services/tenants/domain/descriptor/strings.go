package descriptor

// MessageTemplates supplies the localized text used in validation failures.
//
// Implementations own where the text comes from (embedded catalogs, a
// translation service, fixed test strings). Each method returns a ready to
// display string.
type MessageTemplates interface {
	// Title returns the display name of the title field.
	Title() string
	IsRequiredFormat(whatIsRequired string) string
	MustNotBeShorterThanFormat(minimumLength int, whatIsValidated string) string
	MustNotBeLongerThanFormat(maximumLength int, whatIsValidated string) string
}
