package redline

import (
	"encoding/json"
	"fmt"
)

// OpType identifies the kind of document mutation an Operation records.
type OpType string

// Operation types.
const (
	OpInsert OpType = "insert"
	OpDelete OpType = "delete"
	OpEdit   OpType = "edit"
	OpMove   OpType = "move"
)

// Operation is an immutable, timestamped record of one document mutation.
// The operation type is carried by the concrete Data variant.
type Operation struct {
	ID        string
	ElementID string
	Timestamp int64 // Unix milliseconds
	UserID    string
	Data      OperationData
}

// Type returns the operation type derived from its data variant.
func (o Operation) Type() OpType {
	if o.Data == nil {
		return ""
	}
	return o.Data.opType()
}

// Source returns the originator tag recorded on the operation, if any.
func (o Operation) Source() string {
	switch d := o.Data.(type) {
	case InsertData:
		return d.Source
	case DeleteData:
		return d.Source
	case EditData:
		return d.Source
	case MoveData:
		return d.Source
	case nil:
		return ""
	default:
		panic(fmt.Sprintf("redline: unknown operation data %T", d))
	}
}

// OperationData is the tagged payload of an Operation. The set of
// implementations is closed: InsertData, DeleteData, EditData, MoveData.
type OperationData interface {
	opType() OpType
}

// InsertData records a newly created element.
type InsertData struct {
	Content   string   `json:"content"`
	Metadata  Metadata `json:"metadata"`
	Position  Position `json:"position"`
	ParentID  string   `json:"parentId,omitempty"`
	Generated bool     `json:"generated,omitempty"` // Created by segment replacement
	Source    string   `json:"source,omitempty"`
}

// DeleteData records a removed element and what it held.
type DeleteData struct {
	OriginalContent  string   `json:"originalContent"`
	OriginalMetadata Metadata `json:"originalMetadata"`
	Source           string   `json:"source,omitempty"`
}

// EditData records a content and/or metadata change to an element.
type EditData struct {
	OldContent  string    `json:"oldContent"`
	NewContent  string    `json:"newContent"`
	Changes     []Change  `json:"changes"`
	OldMetadata *Metadata `json:"oldMetadata,omitempty"`
	NewMetadata *Metadata `json:"newMetadata,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// MoveData records a positional move. Positions index into the element
// list as it exists at the moment the move is replayed.
type MoveData struct {
	FromPosition int    `json:"fromPosition"`
	ToPosition   int    `json:"toPosition"`
	Source       string `json:"source,omitempty"`
}

func (InsertData) opType() OpType { return OpInsert }
func (DeleteData) opType() OpType { return OpDelete }
func (EditData) opType() OpType   { return OpEdit }
func (MoveData) opType() OpType   { return OpMove }

// operationJSON is the wire shape of an Operation.
type operationJSON struct {
	ID        string          `json:"id"`
	Type      OpType          `json:"type"`
	ElementID string          `json:"elementId"`
	Timestamp int64           `json:"timestamp"`
	UserID    string          `json:"userId,omitempty"`
	Data      json.RawMessage `json:"data"`
}

// MarshalJSON encodes the operation with a "type" discriminator.
func (o Operation) MarshalJSON() ([]byte, error) {
	if o.Data == nil {
		return nil, fmt.Errorf("operation %s: missing data", o.ID)
	}
	data, err := json.Marshal(o.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(operationJSON{
		ID:        o.ID,
		Type:      o.Type(),
		ElementID: o.ElementID,
		Timestamp: o.Timestamp,
		UserID:    o.UserID,
		Data:      data,
	})
}

// UnmarshalJSON decodes an operation, selecting the data variant by "type".
func (o *Operation) UnmarshalJSON(b []byte) error {
	var raw operationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var data OperationData
	switch raw.Type {
	case OpInsert:
		var d InsertData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("insert data: %w", err)
		}
		data = d
	case OpDelete:
		var d DeleteData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("delete data: %w", err)
		}
		data = d
	case OpEdit:
		var d EditData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("edit data: %w", err)
		}
		data = d
	case OpMove:
		var d MoveData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("move data: %w", err)
		}
		data = d
	default:
		return fmt.Errorf("unknown operation type %q", raw.Type)
	}

	*o = Operation{
		ID:        raw.ID,
		ElementID: raw.ElementID,
		Timestamp: raw.Timestamp,
		UserID:    raw.UserID,
		Data:      data,
	}
	return nil
}

// Summary returns a one-line human readable description of the operation.
func (o Operation) Summary() string {
	switch d := o.Data.(type) {
	case InsertData:
		switch {
		case d.Position.After != "":
			return fmt.Sprintf("insert %s after %s", o.ElementID, d.Position.After)
		case d.Position.Before != "":
			return fmt.Sprintf("insert %s before %s", o.ElementID, d.Position.Before)
		default:
			return fmt.Sprintf("insert %s at end", o.ElementID)
		}
	case DeleteData:
		return fmt.Sprintf("delete %s", o.ElementID)
	case EditData:
		return fmt.Sprintf("edit %s (%d changes)", o.ElementID, countEdits(d.Changes))
	case MoveData:
		return fmt.Sprintf("move %s from %d to %d", o.ElementID, d.FromPosition, d.ToPosition)
	default:
		return fmt.Sprintf("unknown operation on %s", o.ElementID)
	}
}

func countEdits(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Kind != ChangeEqual {
			n++
		}
	}
	return n
}
