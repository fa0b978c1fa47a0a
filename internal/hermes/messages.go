package hermes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IntentMessage is published by the intent engine when an utterance was
// recognised. Topic: hermes/intent/{username}:{intentName}.
type IntentMessage struct {
	SessionID string     `json:"sessionId"`
	SiteID    string     `json:"siteId"`
	Input     string     `json:"input,omitempty"`
	Intent    IntentInfo `json:"intent"`
	Slots     []Slot     `json:"slots"`
}

// IntentInfo identifies the recognised intent.
type IntentInfo struct {
	Name       string  `json:"intentName"`
	Confidence float64 `json:"confidenceScore,omitempty"`
}

// Slot is a single recognised slot in the kind-tagged wire envelope.
type Slot struct {
	Name  string    `json:"slotName"`
	Value SlotValue `json:"value"`
}

// SlotValue carries the typed value of a slot.
type SlotValue struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// SessionEvent is published by the dialogue manager on session lifecycle
// changes. Topics: hermes/dialogueManager/sessionStarted and sessionEnded.
type SessionEvent struct {
	SessionID string `json:"sessionId"`
	SiteID    string `json:"siteId"`
}

// InjectionComplete is published by the intent engine once an injection
// request has been processed. Topic: hermes/injection/complete.
type InjectionComplete struct {
	RequestID string `json:"requestId"`
}

// ParseIntent decodes an intent message payload.
func ParseIntent(payload []byte) (*IntentMessage, error) {
	var msg IntentMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	if msg.SiteID == "" {
		return nil, fmt.Errorf("%w: missing siteId", ErrMalformedMessage)
	}
	return &msg, nil
}

// ShortName strips the "{username}:" prefix from a fully qualified intent
// name. Returns the name unchanged when no prefix is present.
func ShortName(intentName string) string {
	if i := strings.IndexByte(intentName, ':'); i >= 0 {
		return intentName[i+1:]
	}
	return intentName
}

// Username returns the "{username}:" prefix of a fully qualified intent
// name, or "" when no prefix is present.
func Username(intentName string) string {
	if i := strings.IndexByte(intentName, ':'); i >= 0 {
		return intentName[:i]
	}
	return ""
}
