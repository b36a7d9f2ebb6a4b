/*
Package session hosts live story traversals.

A Session owns one domain.State, applies user events through a Navigator
and schedules the second phase of deferred (feedback) transitions. Every
reset or teardown invalidates any scheduled phase, so a stale callback never
lands on a replaced state.

The Manager keeps an in-memory table of sessions for multi-client adapters
(HTTP, MCP). Nothing is persisted: a session ends with its process.
*/
package session
