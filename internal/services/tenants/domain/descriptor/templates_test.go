package descriptor

import "fmt"

type fakeTemplates struct{}

func (fakeTemplates) Title() string { return "Title" }

func (fakeTemplates) IsRequiredFormat(what string) string {
	return fmt.Sprintf("%s is required", what)
}

func (fakeTemplates) MustNotBeShorterThanFormat(min int, what string) string {
	return fmt.Sprintf("%s shorter than %d", what, min)
}

func (fakeTemplates) MustNotBeLongerThanFormat(max int, what string) string {
	return fmt.Sprintf("%s longer than %d", what, max)
}
