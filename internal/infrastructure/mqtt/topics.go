package mqtt

import "fmt"

// Topic prefixes for the three message families Tonraum Core participates in.
//
// The hermes prefix belongs to the voice front end (intents in, dialogue
// management out). The squeezebox and bluetooth prefixes belong to the
// per-site satellite agents that own the local squeezelite service and
// bluetooth hardware; Core publishes requests and consumes answers.
const (
	// TopicPrefixHermes is the base for all voice front-end topics.
	TopicPrefixHermes = "hermes"

	// TopicPrefixSqueezebox is the base for squeezelite satellite topics.
	TopicPrefixSqueezebox = "squeezebox"

	// TopicPrefixBluetooth is the base for bluetooth satellite topics.
	TopicPrefixBluetooth = "bluetooth"

	// TopicPrefixSystem is the base for Tonraum system topics (status/LWT).
	TopicPrefixSystem = "tonraum/system"
)

// Satellite operation names, used as the final topic segment on request and
// answer topics.
const (
	OpSiteInfo         = "siteInfo"
	OpServiceStart     = "serviceStart"
	OpServiceStop      = "serviceStop"
	OpDeviceConnect    = "deviceConnect"
	OpDeviceDisconnect = "deviceDisconnect"
	OpDeviceRemove     = "deviceRemove"
)

// Topics provides builders for all MQTT topics used by Tonraum Core.
// Using these helpers keeps topic naming consistent across the codebase.
//
//	topics := mqtt.Topics{}
//	topics.BluetoothRequest("kitchen", mqtt.OpDeviceConnect)
//	// Returns: "bluetooth/request/oneSite/kitchen/deviceConnect"
type Topics struct{}

// =============================================================================
// Hermes Topics (voice front end)
// =============================================================================

// Intent returns the topic a fully qualified intent is published on.
//
// Example: hermes/intent/domi:tonraumMusic
func (Topics) Intent(qualifiedName string) string {
	return fmt.Sprintf("%s/intent/%s", TopicPrefixHermes, qualifiedName)
}

// AllIntents returns a pattern matching every recognised intent.
//
// Pattern: hermes/intent/#
func (Topics) AllIntents() string {
	return fmt.Sprintf("%s/intent/#", TopicPrefixHermes)
}

// DialogueEndSession returns the topic that terminates a dialogue session.
func (Topics) DialogueEndSession() string {
	return fmt.Sprintf("%s/dialogueManager/endSession", TopicPrefixHermes)
}

// DialogueStartSession returns the topic that opens a new dialogue session.
// Used for asynchronous notifications after the original session has ended.
func (Topics) DialogueStartSession() string {
	return fmt.Sprintf("%s/dialogueManager/startSession", TopicPrefixHermes)
}

// DialogueContinueSession returns the topic that keeps a session open with a
// follow-up question.
func (Topics) DialogueContinueSession() string {
	return fmt.Sprintf("%s/dialogueManager/continueSession", TopicPrefixHermes)
}

// SessionStarted returns the session lifecycle topic for session starts.
func (Topics) SessionStarted() string {
	return fmt.Sprintf("%s/dialogueManager/sessionStarted", TopicPrefixHermes)
}

// SessionEnded returns the session lifecycle topic for session ends.
func (Topics) SessionEnded() string {
	return fmt.Sprintf("%s/dialogueManager/sessionEnded", TopicPrefixHermes)
}

// InjectionPerform returns the topic for entity injection requests.
func (Topics) InjectionPerform() string {
	return fmt.Sprintf("%s/injection/perform", TopicPrefixHermes)
}

// InjectionComplete returns the topic for entity injection completions.
func (Topics) InjectionComplete() string {
	return fmt.Sprintf("%s/injection/complete", TopicPrefixHermes)
}

// =============================================================================
// Squeezebox Satellite Topics
// =============================================================================

// SiteRequest returns the request topic for one site's squeezelite agent.
//
// Example: squeezebox/request/oneSite/kitchen/serviceStart
func (Topics) SiteRequest(siteID, op string) string {
	return fmt.Sprintf("%s/request/oneSite/%s/%s", TopicPrefixSqueezebox, siteID, op)
}

// AllSitesRequest returns the broadcast request topic for every site.
//
// Example: squeezebox/request/allSites/siteInfo
func (Topics) AllSitesRequest(op string) string {
	return fmt.Sprintf("%s/request/allSites/%s", TopicPrefixSqueezebox, op)
}

// SqueezeboxAnswer returns the answer topic for a squeezebox operation.
//
// Example: squeezebox/answer/siteInfo
func (Topics) SqueezeboxAnswer(op string) string {
	return fmt.Sprintf("%s/answer/%s", TopicPrefixSqueezebox, op)
}

// AllSqueezeboxAnswers returns a pattern matching every squeezebox answer.
//
// Pattern: squeezebox/answer/#
func (Topics) AllSqueezeboxAnswers() string {
	return fmt.Sprintf("%s/answer/#", TopicPrefixSqueezebox)
}

// =============================================================================
// Bluetooth Satellite Topics
// =============================================================================

// BluetoothRequest returns the request topic for one site's bluetooth agent.
//
// Example: bluetooth/request/oneSite/kitchen/deviceConnect
func (Topics) BluetoothRequest(siteID, op string) string {
	return fmt.Sprintf("%s/request/oneSite/%s/%s", TopicPrefixBluetooth, siteID, op)
}

// BluetoothAnswer returns the answer topic for a bluetooth operation.
//
// Example: bluetooth/answer/deviceConnect
func (Topics) BluetoothAnswer(op string) string {
	return fmt.Sprintf("%s/answer/%s", TopicPrefixBluetooth, op)
}

// AllBluetoothAnswers returns a pattern matching every bluetooth answer.
//
// Pattern: bluetooth/answer/#
func (Topics) AllBluetoothAnswers() string {
	return fmt.Sprintf("%s/answer/#", TopicPrefixBluetooth)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the Tonraum status topic (online/offline, LWT).
//
// Example: tonraum/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
