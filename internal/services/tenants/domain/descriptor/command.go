package descriptor

import "fmt"

// Command is a requested intent against a tenant descriptor.
//
// The set of commands is closed: only the variants declared in this package
// satisfy the interface, and every switch over Command handles each of them.
type Command interface {
	fmt.Stringer
	isCommand()
}

// CreateCommand requests creation of a descriptor with a title.
type CreateCommand struct {
	Title string
}

// UpdateCommand requests a title change on an existing descriptor.
type UpdateCommand struct {
	Title string
}

// DeleteCommand requests retirement of the descriptor.
type DeleteCommand struct{}

func (CreateCommand) isCommand() {}
func (UpdateCommand) isCommand() {}
func (DeleteCommand) isCommand() {}

func (c CreateCommand) String() string {
	return fmt.Sprintf("CreateCommand(Title = %s)", c.Title)
}

func (c UpdateCommand) String() string {
	return fmt.Sprintf("UpdateCommand(Title = %s)", c.Title)
}

func (DeleteCommand) String() string {
	return "DeleteCommand()"
}
