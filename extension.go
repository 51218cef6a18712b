package redline

// Built-in event names.
const (
	EventBeforeOperation = "beforeOperation"
	EventAfterOperation  = "afterOperation"
	EventUndo            = "undo"
	EventRedo            = "redo"
)

// OperationEvent is the payload of EventBeforeOperation and
// EventAfterOperation. It is delivered by value.
type OperationEvent struct {
	Operation Operation
}

// UndoRedoEvent is the payload of EventUndo and EventRedo.
type UndoRedoEvent struct {
	Operation Operation // The operation that was undone or redone
}

// Handler receives an event payload. Handlers run synchronously, in
// registration order.
type Handler func(payload any)

// Extension is an independent module that observes and originates
// operations through an ExtensionContext.
type Extension interface {
	// ID returns the unique identifier of the extension.
	ID() string
	// Register is called once when the extension is registered.
	// Returning an error aborts the registration.
	Register(ctx ExtensionContext) error
}

// Disposer is implemented by extensions that need a cleanup hook when they
// are unregistered.
type Disposer interface {
	Dispose()
}

// ExtensionContext is the capability set handed to a registered extension.
type ExtensionContext interface {
	// On subscribes to an event and returns a function that unsubscribes.
	On(event string, h Handler) (unsubscribe func())
	// Emit delivers payload to every handler subscribed to event.
	Emit(event string, payload any)
	// ApplyChange records a change through the operation log. The
	// operation's source defaults to the extension id. Inserts return the
	// new element id; other changes return an empty string.
	ApplyChange(change ExtensionChange) (string, error)
	// Element returns the current state of an element.
	Element(id string) (Element, bool)
	// Document returns the current element list.
	Document() []Element
}

// ExtensionChange describes a mediated write. Which fields apply depends on
// Type: inserts use Content, Metadata, Position, ParentID and Generated;
// edits use ElementID, Content and optionally Metadata; deletes use
// ElementID; moves use ElementID, FromPosition and ToPosition.
type ExtensionChange struct {
	Type         OpType
	ElementID    string
	Content      string
	Metadata     *Metadata
	Position     Position
	FromPosition int
	ToPosition   int
	ParentID     string
	Generated    bool
	Source       string
}
