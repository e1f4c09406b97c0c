package audit

import "encoding/json"

// Snapshot converts an entity to the generic map form stored in audit
// before/after columns. Returns nil when the value cannot be represented,
// so a failed snapshot never blocks the mutation it describes.
func Snapshot(v any) map[string]any {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
