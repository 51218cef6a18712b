// Package tracker implements the change-tracking engine: an append-only
// operation log with undo and redo over an immutable element snapshot,
// per-element baselines for tracked-change previews, segment replacement
// and an extension registry.
//
// A Tracker is not safe for concurrent use.
package tracker

import (
	"slices"
	"time"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/replay"
	"github.com/fwojciec/redline/store"
	"github.com/fwojciec/redline/worddiff"
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// Tracker records document mutations as operations and answers queries by
// replaying them over the original snapshot.
type Tracker struct {
	store     *store.Store
	log       opLog
	baselines map[string]string
	registry  registry

	differ      redline.Differ
	logger      *zap.Logger
	now         func() time.Time
	userID      string
	newID       func() string
	newOpID     func() string
	history     []redline.Operation
	redoHistory []redline.Operation

	// Replayed state for log.version; valid while stateOK is set.
	state        []redline.Element
	stateVersion uint64
	stateOK      bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDiffer sets the diff engine used for edits and tracked views.
func WithDiffer(d redline.Differ) Option {
	return func(t *Tracker) {
		t.differ = d
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithClock sets the time source used to stamp operations.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithUserID stamps every new operation with userID.
func WithUserID(userID string) Option {
	return func(t *Tracker) {
		t.userID = userID
	}
}

// WithIDGenerator sets the generator for ids of inserted elements.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) {
		t.newID = gen
	}
}

// WithOperationIDGenerator sets the generator for operation ids.
func WithOperationIDGenerator(gen func() string) Option {
	return func(t *Tracker) {
		t.newOpID = gen
	}
}

// WithHistory restores a previously saved log. The restored tracker starts
// with no unsaved operations.
func WithHistory(applied, redoable []redline.Operation) Option {
	return func(t *Tracker) {
		t.history = slices.Clone(applied)
		t.redoHistory = slices.Clone(redoable)
	}
}

// New loads elements as the original snapshot. It fails with a
// *redline.DuplicateIDError if element ids repeat.
func New(elements []redline.Element, opts ...Option) (*Tracker, error) {
	s, err := store.Load(elements)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		store:     s,
		baselines: make(map[string]string),
		registry:  newRegistry(),
		differ:    worddiff.NewDiffer(),
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
		newOpID:   func() string { return ksuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}

	t.log.applied = t.history
	t.log.redoable = t.redoHistory
	t.history, t.redoHistory = nil, nil
	return t, nil
}

// InsertOptions carries the optional parts of an insert.
type InsertOptions struct {
	ID        string // Explicit element id; generated when empty
	ParentID  string
	Generated bool
	Source    string
}

// EditOptions carries the optional parts of an edit.
type EditOptions struct {
	Metadata *redline.Metadata // Replaces the element's metadata when set
	Source   string
}

// Insert adds a new element next to the element named by pos, or at the end
// when pos is zero, and returns its id. An anchor that does not exist when
// the log is replayed causes the insert to be dropped.
func (t *Tracker) Insert(content string, meta redline.Metadata, pos redline.Position, opts InsertOptions) (string, error) {
	id := opts.ID
	if id == "" {
		id = t.newID()
	} else if _, ok := t.ElementByID(id); ok {
		return "", &redline.DuplicateIDError{Duplicates: []redline.DuplicateID{{ID: id, Count: 2}}}
	}

	t.record(id, redline.InsertData{
		Content:   content,
		Metadata:  meta.Clone(),
		Position:  pos,
		ParentID:  opts.ParentID,
		Generated: opts.Generated,
		Source:    opts.Source,
	})
	return id, nil
}

// Edit replaces the content, and optionally the metadata, of an element.
// Nothing is recorded when neither actually changes.
func (t *Tracker) Edit(id, content string, opts EditOptions) error {
	current, ok := t.ElementByID(id)
	if !ok {
		return &redline.NotFoundError{ID: id}
	}

	metaChanged := opts.Metadata != nil && !opts.Metadata.Equal(current.Metadata)
	if content == current.Content && !metaChanged {
		t.logger.Debug("skipped no-op edit", zap.String("element_id", id), zap.String("source", opts.Source))
		return nil
	}

	data := redline.EditData{
		OldContent: current.Content,
		NewContent: content,
		Changes:    t.differ.Compute(current.Content, content),
		Source:     opts.Source,
	}
	if metaChanged {
		oldMeta := current.Metadata.Clone()
		newMeta := opts.Metadata.Clone()
		data.OldMetadata = &oldMeta
		data.NewMetadata = &newMeta
	}
	t.record(id, data)
	return nil
}

// Delete removes an element.
func (t *Tracker) Delete(id, source string) error {
	current, ok := t.ElementByID(id)
	if !ok {
		return &redline.NotFoundError{ID: id}
	}
	t.record(id, redline.DeleteData{
		OriginalContent:  current.Content,
		OriginalMetadata: current.Metadata.Clone(),
		Source:           source,
	})
	delete(t.baselines, id)
	return nil
}

// Move records moving the element at index from to index to. The indices
// are interpreted against the element list at replay time, not against id.
func (t *Tracker) Move(id string, from, to int, source string) error {
	if _, ok := t.ElementByID(id); !ok {
		return &redline.NotFoundError{ID: id}
	}
	t.record(id, redline.MoveData{
		FromPosition: from,
		ToPosition:   to,
		Source:       source,
	})
	return nil
}

// record stamps an operation, appends it and notifies extensions around
// the append.
func (t *Tracker) record(elementID string, data redline.OperationData) {
	op := redline.Operation{
		ID:        t.newOpID(),
		ElementID: elementID,
		Timestamp: t.now().UnixMilli(),
		UserID:    t.userID,
		Data:      data,
	}

	t.registry.emit(redline.EventBeforeOperation, redline.OperationEvent{Operation: op})
	t.log.append(op)
	t.logger.Debug("operation appended",
		zap.String("op_id", op.ID),
		zap.String("op_type", string(op.Type())),
		zap.String("element_id", op.ElementID),
		zap.String("source", op.Source()),
	)
	t.registry.emit(redline.EventAfterOperation, redline.OperationEvent{Operation: op})
}

// Undo reverts the most recent operation. It reports whether there was one.
// All baselines are cleared. Calling Undo or Redo from a beforeOperation
// handler has undefined results.
func (t *Tracker) Undo() bool {
	op, ok := t.log.undo()
	if !ok {
		return false
	}
	clear(t.baselines)
	t.logger.Debug("operation undone", zap.String("op_id", op.ID), zap.String("op_type", string(op.Type())))
	t.registry.emit(redline.EventUndo, redline.UndoRedoEvent{Operation: op})
	return true
}

// Redo reapplies the most recently undone operation. It reports whether
// there was one. All baselines are cleared.
func (t *Tracker) Redo() bool {
	op, ok := t.log.redo()
	if !ok {
		return false
	}
	clear(t.baselines)
	t.logger.Debug("operation redone", zap.String("op_id", op.ID), zap.String("op_type", string(op.Type())))
	t.registry.emit(redline.EventRedo, redline.UndoRedoEvent{Operation: op})
	return true
}

// CanUndo reports whether an operation is in effect.
func (t *Tracker) CanUndo() bool { return len(t.log.applied) > 0 }

// CanRedo reports whether an undone operation can be reapplied.
func (t *Tracker) CanRedo() bool { return len(t.log.redoable) > 0 }

// CurrentState returns the document with every applied operation replayed.
func (t *Tracker) CurrentState() []redline.Element {
	return redline.CloneElements(t.current())
}

// current returns the replayed state, shared with the cache. Callers must
// not modify it.
func (t *Tracker) current() []redline.Element {
	if !t.stateOK || t.stateVersion != t.log.version {
		t.state = replay.Reconstruct(t.store.Snapshot(), t.log.applied)
		t.stateVersion = t.log.version
		t.stateOK = true
	}
	return t.state
}

// StateAfter returns the document after the first n applied operations.
// n is clamped to the log length.
func (t *Tracker) StateAfter(n int) []redline.Element {
	return replay.Reconstruct(t.store.Snapshot(), t.log.prefix(n))
}

// ElementByID returns the current state of an element.
func (t *Tracker) ElementByID(id string) (redline.Element, bool) {
	for _, e := range t.current() {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return redline.Element{}, false
}

// ElementContent returns the current content of an element.
func (t *Tracker) ElementContent(id string) (string, error) {
	e, ok := t.ElementByID(id)
	if !ok {
		return "", &redline.NotFoundError{ID: id}
	}
	return e.Content, nil
}

// Original returns a copy of the snapshot the tracker was loaded with.
func (t *Tracker) Original() []redline.Element {
	return t.store.Snapshot()
}

// Operations returns a copy of the applied operations in order.
func (t *Tracker) Operations() []redline.Operation {
	return t.log.snapshot()
}

// RedoStack returns a copy of the redo stack; the next redo is the last entry.
func (t *Tracker) RedoStack() []redline.Operation {
	return t.log.redoSnapshot()
}

// Session returns everything needed to restore the tracker later.
func (t *Tracker) Session() *redline.Session {
	return &redline.Session{
		Elements: t.Original(),
		Applied:  t.Operations(),
		Redoable: t.RedoStack(),
	}
}

// HasUnsavedOperations reports whether the log changed since it was last
// marked as saved.
func (t *Tracker) HasUnsavedOperations() bool { return t.log.dirty }

// MarkAsSaved clears the unsaved flag.
func (t *Tracker) MarkAsSaved() { t.log.dirty = false }

// Clear drops every operation, the redo stack and all baselines, and marks
// the document as saved.
func (t *Tracker) Clear() {
	n := len(t.log.applied)
	t.log.reset()
	clear(t.baselines)
	t.logger.Info("operation log cleared", zap.Int("operations", n))
}
