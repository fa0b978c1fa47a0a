// Package assistant wires the voice front end to the playback system.
//
// The Assistant subscribes to the hermes intent and dialogue topics and to
// the satellite answer topics, routes recognised intents to the playback
// handlers, feeds bring-up answers to the readiness orchestrator, and keeps
// the site registry in sync with topology snapshots from the satellites.
//
// It also owns two policies that are not playback operations themselves:
// auto-pause (pause playing devices while a voice session is open in their
// room) and entity injection (teaching the voice model the current
// catalogue and topology names).
package assistant
