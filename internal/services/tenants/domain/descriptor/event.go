package descriptor

import "fmt"

// Type identifies an event kind in the event log.
type Type string

const (
	EventTypeCreated Type = "tenant.descriptor.created"
	EventTypeUpdated Type = "tenant.descriptor.updated"
	EventTypeDeleted Type = "tenant.descriptor.deleted"
)

// Event is an immutable fact that happened to a tenant descriptor.
//
// Events are the only way descriptor state changes. Like Command, the set is
// closed to this package.
type Event interface {
	fmt.Stringer
	// Type returns the stable name the event is stored under.
	Type() Type
	isEvent()
}

// CreatedEvent records that a descriptor was created with a title.
type CreatedEvent struct {
	Title string
}

// UpdatedEvent records that a descriptor title changed.
type UpdatedEvent struct {
	Title string
}

// DeletedEvent records that a descriptor was retired.
type DeletedEvent struct{}

func (CreatedEvent) isEvent() {}
func (UpdatedEvent) isEvent() {}
func (DeletedEvent) isEvent() {}

func (CreatedEvent) Type() Type { return EventTypeCreated }
func (UpdatedEvent) Type() Type { return EventTypeUpdated }
func (DeletedEvent) Type() Type { return EventTypeDeleted }

func (e CreatedEvent) String() string {
	return fmt.Sprintf("CreatedEvent(Title = %s)", e.Title)
}

func (e UpdatedEvent) String() string {
	return fmt.Sprintf("UpdatedEvent(Title = %s)", e.Title)
}

func (DeletedEvent) String() string {
	return "DeletedEvent()"
}
