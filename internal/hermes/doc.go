// Package hermes implements the message types and publishing helpers for the
// hermes dialogue protocol used by the voice front end.
//
// Tonraum Core does not parse speech itself. An external intent engine
// publishes recognised intents as JSON messages on hermes/intent/{name};
// this package decodes those messages, flattens their slot values into a
// Slots map, and provides the Dialogue type for the outbound half of the
// protocol (ending sessions, asynchronous notifications, entity injection).
//
// # Key Types
//
//   - IntentMessage: a recognised intent with session/site identity and slots
//   - Slots: flattened slot values (Custom slots as strings, Number/Ordinal as ints)
//   - Dialogue: publisher for dialogueManager and injection topics
//
// # Slot Extraction
//
// The intent engine emits slot values in a kind-tagged envelope. Only the
// kinds the actions consume are extracted:
//
//	Custom          -> string
//	Number, Ordinal -> int (fractional values are truncated)
//
// Unknown kinds are dropped, matching the voice model, which never produces
// them for the tonraum intents.
package hermes
