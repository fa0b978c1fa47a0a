package hermes

import (
	"errors"
	"testing"
)

func TestParseIntent(t *testing.T) {
	payload := []byte(`{
		"sessionId": "sess-1",
		"siteId": "kitchen",
		"input": "spiele musik von miles davis",
		"intent": {"intentName": "domi:tonraumMusic", "confidenceScore": 0.92},
		"slots": [
			{"slotName": "artist", "value": {"kind": "Custom", "value": "Miles Davis"}},
			{"slotName": "volume", "value": {"kind": "Number", "value": 40}}
		]
	}`)

	msg, err := ParseIntent(payload)
	if err != nil {
		t.Fatalf("ParseIntent() error = %v", err)
	}
	if msg.SessionID != "sess-1" || msg.SiteID != "kitchen" {
		t.Errorf("session/site = %s/%s, want sess-1/kitchen", msg.SessionID, msg.SiteID)
	}
	if msg.Intent.Name != "domi:tonraumMusic" {
		t.Errorf("intent = %q, want domi:tonraumMusic", msg.Intent.Name)
	}
	if len(msg.Slots) != 2 {
		t.Errorf("slots = %d, want 2", len(msg.Slots))
	}
}

func TestParseIntent_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"missing siteId", `{"sessionId": "s", "intent": {"intentName": "x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntent([]byte(tt.payload))
			if !errors.Is(err, ErrMalformedMessage) {
				t.Errorf("ParseIntent() error = %v, want ErrMalformedMessage", err)
			}
		})
	}
}

func TestShortNameAndUsername(t *testing.T) {
	tests := []struct {
		qualified string
		short     string
		username  string
	}{
		{"domi:tonraumMusic", "tonraumMusic", "domi"},
		{"tonraumMusic", "tonraumMusic", ""},
		{":tonraumMusic", "tonraumMusic", ""},
	}
	for _, tt := range tests {
		if got := ShortName(tt.qualified); got != tt.short {
			t.Errorf("ShortName(%q) = %q, want %q", tt.qualified, got, tt.short)
		}
		if got := Username(tt.qualified); got != tt.username {
			t.Errorf("Username(%q) = %q, want %q", tt.qualified, got, tt.username)
		}
	}
}

func TestExtractSlots(t *testing.T) {
	msg, err := ParseIntent([]byte(`{
		"siteId": "kitchen",
		"intent": {"intentName": "domi:tonraumMusic"},
		"slots": [
			{"slotName": "artist", "value": {"kind": "Custom", "value": "Miles Davis"}},
			{"slotName": "volume", "value": {"kind": "Number", "value": 42.0}},
			{"slotName": "position", "value": {"kind": "Ordinal", "value": 3}},
			{"slotName": "broken", "value": {"kind": "Custom", "value": 7}},
			{"slotName": "unknown", "value": {"kind": "AmountOfMoney", "value": "5"}}
		]
	}`))
	if err != nil {
		t.Fatalf("ParseIntent() error = %v", err)
	}

	slots := msg.ExtractSlots()

	if got := slots.Str("artist"); got != "Miles Davis" {
		t.Errorf("artist = %q, want Miles Davis", got)
	}
	if v, ok := slots.Int("volume"); !ok || v != 42 {
		t.Errorf("volume = %d/%v, want 42/true", v, ok)
	}
	if v, ok := slots.Int("position"); !ok || v != 3 {
		t.Errorf("position = %d/%v, want 3/true", v, ok)
	}
	if slots.Has("broken") {
		t.Error("undecodable slot should be dropped")
	}
	if slots.Has("unknown") {
		t.Error("unknown slot kind should be dropped")
	}
	if got := slots.Str("missing"); got != "" {
		t.Errorf("missing slot = %q, want empty", got)
	}
}
