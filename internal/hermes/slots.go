package hermes

import "encoding/json"

// Slots holds the flattened slot values of one intent. Custom slots are
// strings, Number and Ordinal slots are ints. Missing keys read as zero
// values.
type Slots map[string]any

// ExtractSlots flattens the kind-tagged slot list of an intent message.
// Slots with unknown kinds or undecodable values are dropped; a broken slot
// must not take the whole intent down with it.
func (m *IntentMessage) ExtractSlots() Slots {
	slots := make(Slots, len(m.Slots))
	for _, slot := range m.Slots {
		switch slot.Value.Kind {
		case "Custom", "InstantTime", "TimeInterval", "Duration":
			var s string
			if err := json.Unmarshal(slot.Value.Value, &s); err == nil {
				slots[slot.Name] = s
			}
		case "Number", "Ordinal":
			var f float64
			if err := json.Unmarshal(slot.Value.Value, &f); err == nil {
				slots[slot.Name] = int(f)
			}
		}
	}
	return slots
}

// Str returns the string value of a slot, or "" when absent or not a string.
func (s Slots) Str(name string) string {
	v, _ := s[name].(string)
	return v
}

// Int returns the int value of a slot and whether it was present.
func (s Slots) Int(name string) (int, bool) {
	v, ok := s[name].(int)
	return v, ok
}

// Has reports whether a slot with the given name was recognised.
func (s Slots) Has(name string) bool {
	_, ok := s[name]
	return ok
}
