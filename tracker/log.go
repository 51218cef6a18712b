package tracker

import (
	"slices"

	"github.com/fwojciec/redline"
)

// opLog holds the operations in effect and the redo stack. Appending a new
// operation discards the redo stack.
type opLog struct {
	applied  []redline.Operation
	redoable []redline.Operation // Top of the stack is the last entry
	dirty    bool
	version  uint64 // Bumped whenever applied changes
}

func (l *opLog) append(op redline.Operation) {
	l.applied = append(l.applied, op)
	l.redoable = nil
	l.dirty = true
	l.version++
}

func (l *opLog) undo() (redline.Operation, bool) {
	if len(l.applied) == 0 {
		return redline.Operation{}, false
	}
	op := l.applied[len(l.applied)-1]
	l.applied = l.applied[:len(l.applied)-1]
	l.redoable = append(l.redoable, op)
	l.dirty = true
	l.version++
	return op, true
}

func (l *opLog) redo() (redline.Operation, bool) {
	if len(l.redoable) == 0 {
		return redline.Operation{}, false
	}
	op := l.redoable[len(l.redoable)-1]
	l.redoable = l.redoable[:len(l.redoable)-1]
	l.applied = append(l.applied, op)
	l.dirty = true
	l.version++
	return op, true
}

func (l *opLog) reset() {
	l.applied = nil
	l.redoable = nil
	l.dirty = false
	l.version++
}

// prefix returns the first n applied operations, with n clamped to the log.
func (l *opLog) prefix(n int) []redline.Operation {
	n = max(0, min(n, len(l.applied)))
	return l.applied[:n:n]
}

func (l *opLog) snapshot() []redline.Operation {
	return slices.Clone(l.applied)
}

func (l *opLog) redoSnapshot() []redline.Operation {
	return slices.Clone(l.redoable)
}
