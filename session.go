package redline

// Session is everything needed to resume a review: the original snapshot,
// the operations in effect and the operations available to redo.
type Session struct {
	Elements []Element
	Applied  []Operation
	Redoable []Operation // Top of the redo stack is the last entry
}

// SessionStore persists and retrieves review sessions.
type SessionStore interface {
	Load(dir string) (*Session, error)
	Save(dir string, s *Session) error
}
