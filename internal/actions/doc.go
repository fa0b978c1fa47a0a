// Package actions implements the playback operations behind the voice
// intents: music, podcast and radio selection, transport and volume
// control, player synchronisation, track info and voice-model entity
// injection.
//
// Intents that start playback go through the readiness orchestrator first;
// Handlers implements readiness.Dispatcher and receives the deferred action
// once the target devices are ready. Control intents (pause, volume, queue
// navigation) act on the already active devices directly.
//
// Errors returned from handlers are complete German sentences. They travel
// to the dialogue manager unchanged and are spoken to the user.
package actions
