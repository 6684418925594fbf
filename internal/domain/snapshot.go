package domain

import "strconv"

// SnapshotEntry is the observed state of one control.
type SnapshotEntry struct {
	Field   FieldID
	Label   string
	Value   string
	Enabled bool
	Greyed  bool
}

// Snapshot is the state of every bound control in form order.
type Snapshot []SnapshotEntry

// CaptureSnapshot reads the current state of every bound control.
func CaptureSnapshot(b Bindings) (Snapshot, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	snapshot := make(Snapshot, 0, len(Fields))
	for _, field := range Fields {
		control := b.Control(field)
		entry := SnapshotEntry{
			Field:   field,
			Label:   field.Label(),
			Enabled: control.Enabled(),
			Greyed:  b.Label(field).Greyed(),
		}
		switch c := control.(type) {
		case SelectControl:
			_, entry.Value = c.CurrentOption()
		case TextControl:
			entry.Value = c.Text()
		case CheckControl:
			entry.Value = strconv.FormatBool(c.Checked())
		}
		snapshot = append(snapshot, entry)
	}
	return snapshot, nil
}

// Get returns the entry for field.
func (s Snapshot) Get(field FieldID) (SnapshotEntry, bool) {
	for _, entry := range s {
		if entry.Field == field {
			return entry, true
		}
	}
	return SnapshotEntry{}, false
}
