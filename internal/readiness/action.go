package readiness

import "github.com/tonraum/tonraum-core/internal/hermes"

// Kind names the deferred operation a bring-up cycle will run once its
// target devices are ready.
type Kind string

// Deferred operation kinds. SyncSlave and SyncPair are the two chained
// stages of a synchronisation request: the master's cycle defers SyncSlave,
// whose dispatch starts the slave's own cycle deferring SyncPair.
const (
	KindMusic     Kind = "music"
	KindPodcast   Kind = "podcast"
	KindRadio     Kind = "radio"
	KindResume    Kind = "resume"
	KindSyncSlave Kind = "syncSlave"
	KindSyncPair  Kind = "syncPair"
)

// Action is the deferred operation of a bring-up cycle. It is a plain value
// so that it can sit in orchestrator state across message-handling turns;
// the behaviour behind each Kind lives in the Dispatcher.
type Action struct {
	Kind          Kind
	Slots         hermes.Slots
	RequestSiteID string
}

// Target describes the sites a cycle must make ready.
type Target struct {
	// Slots carries the recognised intent slots; room, area and device
	// selection follow the resolution rules of the site registry.
	Slots hermes.Slots

	// RequestSiteID is the site the utterance came from, used for the
	// "hier" keyword and as the default room.
	RequestSiteID string

	// RoomSlot overrides the slot consulted for the room name. Empty
	// means the default room slot. Synchronisation uses this to resolve
	// master and slave from one slot set.
	RoomSlot string

	// Single rejects multi-room resolution ("alle", areas).
	Single bool
}

// Dispatcher runs a deferred action once its cycle is ready. Errors are
// user-facing sentences, spoken at the requesting site.
type Dispatcher interface {
	Dispatch(action Action) error
}
