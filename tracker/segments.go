package tracker

import "github.com/fwojciec/redline"

// ReplaceWithSegments turns element id into one element per segment. The
// first segment overwrites id in place. Later segments reuse elements that
// earlier calls generated for id, in display order, then insert new
// generated elements after the last one used. Generated elements left over
// are deleted. A segment with an empty metadata type keeps the metadata of
// the element it lands on.
func (t *Tracker) ReplaceWithSegments(id string, segments []redline.Segment, source string) (redline.SegmentResult, error) {
	current, ok := t.ElementByID(id)
	if !ok {
		return redline.SegmentResult{}, &redline.NotFoundError{ID: id}
	}
	if len(segments) == 0 {
		segments = []redline.Segment{{Metadata: current.Metadata}}
	}

	if err := t.Edit(id, segments[0].Content, EditOptions{Metadata: segmentMetadata(segments[0]), Source: source}); err != nil {
		return redline.SegmentResult{}, err
	}

	existing := t.generatedChildren(id)
	reuse := min(len(existing), len(segments)-1)

	result := redline.SegmentResult{ElementIDs: []string{id}}
	last := id
	for i, childID := range existing[:reuse] {
		seg := segments[i+1]
		if err := t.Edit(childID, seg.Content, EditOptions{Metadata: segmentMetadata(seg), Source: source}); err != nil {
			return result, err
		}
		result.ElementIDs = append(result.ElementIDs, childID)
		last = childID
	}

	for _, seg := range segments[1+reuse:] {
		newID, err := t.Insert(seg.Content, seg.Metadata, redline.Position{After: last}, InsertOptions{
			ParentID:  id,
			Generated: true,
			Source:    source,
		})
		if err != nil {
			return result, err
		}
		result.ElementIDs = append(result.ElementIDs, newID)
		last = newID
	}

	for _, childID := range existing[reuse:] {
		if err := t.Delete(childID, source); err != nil {
			return result, err
		}
		result.RemovedIDs = append(result.RemovedIDs, childID)
	}
	return result, nil
}

// generatedChildren returns the ids of live elements generated for parentID,
// in current display order.
func (t *Tracker) generatedChildren(parentID string) []string {
	generated := make(map[string]bool)
	for _, op := range t.log.applied {
		if d, ok := op.Data.(redline.InsertData); ok && d.Generated && d.ParentID == parentID {
			generated[op.ElementID] = true
		}
	}
	if len(generated) == 0 {
		return nil
	}

	var ids []string
	for _, e := range t.current() {
		if generated[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func segmentMetadata(seg redline.Segment) *redline.Metadata {
	if seg.Metadata.Type == "" {
		return nil
	}
	m := seg.Metadata
	return &m
}
