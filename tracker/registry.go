package tracker

import (
	"fmt"
	"slices"

	"github.com/fwojciec/redline"
	"go.uber.org/zap"
)

// subscription is one handler attached to one event.
type subscription struct {
	handler redline.Handler
	active  bool
}

// registry maps event names to handlers in registration order and tracks
// each extension's subscriptions for bulk removal.
type registry struct {
	handlers   map[string][]*subscription
	extensions map[string]*registration
}

// registration is the bookkeeping kept for one registered extension.
type registration struct {
	ext      redline.Extension
	unsubs   []func()
	disposed bool
}

func newRegistry() registry {
	return registry{
		handlers:   make(map[string][]*subscription),
		extensions: make(map[string]*registration),
	}
}

func (r *registry) subscribe(event string, h redline.Handler) func() {
	sub := &subscription{handler: h, active: true}
	r.handlers[event] = append(r.handlers[event], sub)
	return func() {
		if !sub.active {
			return
		}
		sub.active = false
		r.handlers[event] = slices.DeleteFunc(r.handlers[event], func(s *subscription) bool {
			return s == sub
		})
		if len(r.handlers[event]) == 0 {
			delete(r.handlers, event)
		}
	}
}

// emit calls every handler subscribed to event when emit starts. Handlers
// unsubscribed by an earlier handler during the same emit are skipped.
func (r *registry) emit(event string, payload any) {
	subs := slices.Clone(r.handlers[event])
	for _, s := range subs {
		if s.active {
			s.handler(payload)
		}
	}
}

// RegisterExtension registers ext and calls its Register method with a
// context bound to the tracker. The returned function unregisters every
// handler the extension subscribed and calls its Dispose hook if it has
// one; calling it more than once has no further effect.
func (t *Tracker) RegisterExtension(ext redline.Extension) (func(), error) {
	id := ext.ID()
	if id == "" {
		return nil, redline.ErrInvalidExtension
	}
	if _, ok := t.registry.extensions[id]; ok {
		return nil, &redline.DuplicateExtensionError{ID: id}
	}

	reg := &registration{ext: ext}
	t.registry.extensions[id] = reg

	if err := ext.Register(&extensionContext{tracker: t, id: id, reg: reg}); err != nil {
		t.unregister(id, reg)
		return nil, fmt.Errorf("register extension %q: %w", id, err)
	}

	t.logger.Debug("extension registered", zap.String("extension_id", id))
	return func() { t.disposeExtension(id, reg) }, nil
}

func (t *Tracker) disposeExtension(id string, reg *registration) {
	if reg.disposed {
		return
	}
	t.unregister(id, reg)
	if d, ok := reg.ext.(redline.Disposer); ok {
		d.Dispose()
	}
	t.logger.Debug("extension disposed", zap.String("extension_id", id))
}

func (t *Tracker) unregister(id string, reg *registration) {
	reg.disposed = true
	for _, unsub := range reg.unsubs {
		unsub()
	}
	reg.unsubs = nil
	if t.registry.extensions[id] == reg {
		delete(t.registry.extensions, id)
	}
}

// Emit delivers payload to every handler subscribed to event.
func (t *Tracker) Emit(event string, payload any) {
	t.registry.emit(event, payload)
}

// ApplyExtensionChange records change through the operation log. Inserts
// return the new element id; every other change returns "".
func (t *Tracker) ApplyExtensionChange(change redline.ExtensionChange) (string, error) {
	switch change.Type {
	case redline.OpInsert:
		return t.Insert(change.Content, metadataOrZero(change.Metadata), change.Position, InsertOptions{
			ParentID:  change.ParentID,
			Generated: change.Generated,
			Source:    change.Source,
		})
	case redline.OpEdit:
		return "", t.Edit(change.ElementID, change.Content, EditOptions{
			Metadata: change.Metadata,
			Source:   change.Source,
		})
	case redline.OpDelete:
		return "", t.Delete(change.ElementID, change.Source)
	case redline.OpMove:
		return "", t.Move(change.ElementID, change.FromPosition, change.ToPosition, change.Source)
	default:
		return "", fmt.Errorf("unsupported change type %q", change.Type)
	}
}

func metadataOrZero(m *redline.Metadata) redline.Metadata {
	if m == nil {
		return redline.Metadata{}
	}
	return *m
}

// Compile-time interface verification.
var _ redline.ExtensionContext = (*extensionContext)(nil)

// extensionContext is the capability set handed to one extension.
type extensionContext struct {
	tracker *Tracker
	id      string
	reg     *registration
}

func (c *extensionContext) On(event string, h redline.Handler) func() {
	unsub := c.tracker.registry.subscribe(event, h)
	if c.reg.disposed {
		unsub()
		return unsub
	}
	c.reg.unsubs = append(c.reg.unsubs, unsub)
	return unsub
}

func (c *extensionContext) Emit(event string, payload any) {
	c.tracker.registry.emit(event, payload)
}

func (c *extensionContext) ApplyChange(change redline.ExtensionChange) (string, error) {
	if change.Source == "" {
		change.Source = c.id
	}
	return c.tracker.ApplyExtensionChange(change)
}

func (c *extensionContext) Element(id string) (redline.Element, bool) {
	return c.tracker.ElementByID(id)
}

func (c *extensionContext) Document() []redline.Element {
	return c.tracker.CurrentState()
}
