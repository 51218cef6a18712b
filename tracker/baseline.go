package tracker

import "github.com/fwojciec/redline"

// SetElementBaseline records content as the "before" side of tracked-change
// previews for id, typically when an editor opens on the element.
func (t *Tracker) SetElementBaseline(id, content string) {
	t.baselines[id] = content
}

// ClearElementBaseline forgets the explicit baseline for id.
func (t *Tracker) ClearElementBaseline(id string) {
	delete(t.baselines, id)
}

// ClearAllBaselines forgets every explicit baseline.
func (t *Tracker) ClearAllBaselines() {
	clear(t.baselines)
}

// Baseline returns the content tracked changes for id are computed against.
// It falls back from an explicit baseline to the original content, then to
// the content of the element's first insert operation, then to "".
func (t *Tracker) Baseline(id string) string {
	if b, ok := t.baselines[id]; ok {
		return b
	}
	if e, ok := t.store.ByID(id); ok {
		return e.Content
	}
	for _, op := range t.log.applied {
		if d, ok := op.Data.(redline.InsertData); ok && op.ElementID == id {
			return d.Content
		}
	}
	return ""
}
