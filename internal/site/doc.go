// Package site holds the structural topology of a Tonraum installation:
// which physical locations (sites) exist, which audio devices live in them,
// and which device currently represents each site's player.
//
// Topology is pushed by the per-site satellite agents as siteInfo snapshot
// messages; the Registry merges those snapshots, preserving the attached
// player facade for devices it has seen before. Sites are never deleted —
// a satellite that goes quiet leaves its last snapshot in place.
//
// # Key Types
//
//   - Site: a configured physical room, its devices and active device
//   - Device: one controllable audio endpoint, with optional bluetooth and
//     soundcard (remote squeezelite service) capabilities
//   - Player: the capability facade each device owns (implemented by
//     internal/lms)
//   - Snapshot: the wire format of a siteInfo topology message
//
// # Target Resolution
//
// Registry.Resolve maps the room/area slots of a voice intent onto concrete
// sites ("hier" is the requester's own room, "alle" every room, otherwise a
// room name, optionally narrowed to an area). Site.DeviceFor then matches
// the device slot against device aliases within one site. Resolution errors
// are German sentences: they are spoken to the user as-is.
//
// # Concurrency
//
// The Registry map is guarded by a RWMutex. Site and Device fields are
// mutated only from serialized message-handling turns (see internal/readiness);
// the registry does not copy on read.
package site
