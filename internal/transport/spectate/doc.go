// Package spectate streams live Sokoban sessions to WebSocket watchers.
//
// Game sessions publish a snapshot whenever their board changes. Watchers
// connect to /watch/{session} and receive every snapshot of that session as a
// JSON message, starting with the latest one. /sessions lists the sessions
// that are currently live.
//
// Message protocol (server to watcher only):
//
//	{"session_id": "abc", "event": "snapshot", "data": {...}}
//	{"session_id": "abc", "event": "ended"}
//
// All hub state is owned by the goroutine running Hub.Run; every other method
// talks to it over channels.
package spectate
