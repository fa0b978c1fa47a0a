package hermes

import (
	"encoding/json"
	"fmt"

	"github.com/tonraum/tonraum-core/internal/infrastructure/mqtt"
)

// Publisher is the transport surface the dialogue layer needs.
// Satisfied by *mqtt.Client.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Dialogue publishes outbound dialogue-manager and injection messages.
//
// Sessions opened by the voice front end are short-lived: every intent ends
// its session promptly (optionally with a spoken text), and anything that
// completes later (bring-up results in particular) is surfaced through
// Notify, which opens a fresh notification session at the target site.
type Dialogue struct {
	pub    Publisher
	topics mqtt.Topics
	qos    byte
}

// NewDialogue creates a dialogue publisher with the given transport and QoS.
func NewDialogue(pub Publisher, qos byte) *Dialogue {
	return &Dialogue{pub: pub, qos: qos}
}

// EndSession terminates a dialogue session. When text is non-empty it is
// spoken at the session's site before the session closes.
func (d *Dialogue) EndSession(sessionID, text string) error {
	payload := map[string]any{"sessionId": sessionID}
	if text != "" {
		payload["text"] = text
	}
	return d.publish(d.topics.DialogueEndSession(), payload)
}

// Notify opens a notification session that speaks text at the given site.
// An empty siteID addresses the default site of the front end.
func (d *Dialogue) Notify(siteID, text string) error {
	init := map[string]any{"type": "notification", "text": text}
	payload := map[string]any{"init": init}
	if siteID != "" {
		payload["siteId"] = siteID
	}
	return d.publish(d.topics.DialogueStartSession(), payload)
}

// ContinueSession keeps a session open with a follow-up question, restricted
// to the given intents. customData, when non-nil, is forwarded JSON-encoded.
func (d *Dialogue) ContinueSession(sessionID, text string, intentFilter []string, customData any) error {
	payload := map[string]any{
		"sessionId":    sessionID,
		"text":         text,
		"intentFilter": intentFilter,
	}
	if customData != nil {
		encoded, err := json.Marshal(customData)
		if err != nil {
			return fmt.Errorf("%w: encoding custom data: %w", ErrPublishFailed, err)
		}
		payload["customData"] = string(encoded)
	}
	return d.publish(d.topics.DialogueContinueSession(), payload)
}

// InjectionAddFromVanilla resets an entity to its trained base values plus
// the injected ones. The only operation kind Tonraum uses.
const InjectionAddFromVanilla = "addFromVanilla"

// InjectionOperation is a single entity-injection operation.
// The wire format is a two-element array: [kind, {entity: values}].
type InjectionOperation struct {
	Kind     string
	Entities map[string][]string
}

// MarshalJSON encodes the operation in the tuple form the intent engine
// expects.
func (op InjectionOperation) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{op.Kind, op.Entities})
}

// PerformInjection asks the intent engine to (re)learn entity values.
// Completion is reported asynchronously on the injection/complete topic,
// correlated by requestID.
func (d *Dialogue) PerformInjection(requestID string, operations []InjectionOperation) error {
	payload := map[string]any{
		"id":         requestID,
		"operations": operations,
	}
	return d.publish(d.topics.InjectionPerform(), payload)
}

func (d *Dialogue) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	if err := d.pub.Publish(topic, data, d.qos, false); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
