// Package readiness implements the device bring-up orchestrator: the state
// machine that stands between a recognised intent and the action handler
// that will eventually serve it.
//
// A playback intent names a room (or "alle", or an area); the devices that
// must serve it may need work before they can play anything: a bluetooth
// link connected by the site's bluetooth agent, or a squeezelite service
// started on the site's host. Both are asynchronous: the orchestrator
// publishes a request and the answer arrives later as an independent MQTT
// message, unordered and interleaved with answers for other sites.
//
// # State machine
//
// Per requesting site, one orchestration cycle:
//
//	Idle -> BuildingQueues -> AwaitingConnection* -> AwaitingService* -> Ready -> Idle
//
// BuildingQueues resolves the target sites, picks one candidate device per
// site and classifies it: bluetooth-disconnected devices enter the
// connection queue, server-disconnected devices with a soundcard enter the
// service queue. The connection queue drains completely before the first
// service request is issued; the service queue drains completely before the
// deferred action runs. A candidate that can never become ready (not
// connected, no soundcard to start) fails the request unless other sites of
// a multi-room request can proceed.
//
// The deferred action is a tagged value (Action), not a stored closure, and
// is handed to the Dispatcher once the cycle reaches Ready.
//
// # Concurrency
//
// All entry points serialise on one mutex: every MQTT delivery is a single
// message-handling turn, and cycle state lives between turns in the
// orchestrator's maps. Answers are correlated by the device-owning site
// (pending map), which is not necessarily the requesting site. There are
// no retries and no timeouts: an answer that never arrives parks the cycle
// until a later request for the same site tears it down implicitly via its
// queues. This is an accepted limitation of the satellite protocol.
package readiness
