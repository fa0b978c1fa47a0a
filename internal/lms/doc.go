// Package lms is the JSON-RPC client for a Logitech Media Server and the
// player capability facade built on top of it.
//
// The server exposes a single RPC endpoint (POST /jsonrpc.js) that takes a
// player MAC and a command token list. No connection is held open; every
// request is one HTTP round trip. Because the orchestration layer treats
// the media server as best-effort, the facade never escalates transport
// failures: command methods are fire-and-forget and reads return zero
// values when the server is unreachable. Callers gate on Connected().
//
// # Key Types
//
//   - Server: the RPC client plus library/favorites catalogue queries
//   - Player: per-device facade implementing site.Player (one instance per
//     MAC for the process lifetime, created through Server.Player)
//   - Result: a decoded RPC result with typed accessors
package lms
