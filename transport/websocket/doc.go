// Package websocket streams karaoke directives and Santa tracker events to
// browser clients.
//
// A central Hub owns every connection. Clients subscribe to one channel
// when they connect: a karaoke session id (/ws?session=abc1) or the Santa
// channel (/ws?channel=santa). Each client has a read pump that keeps the
// ping/pong heartbeat alive and a write pump that drains its buffered send
// queue.
//
// Outgoing frames are JSON:
//
//	{"session_id": "abc1", "event": "line", "data": {...}}
//
// The first frame after connecting is a "snapshot" event carrying the
// current state when the caller provides one.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//	hub.BroadcastEvent("abc1", "line", event)
//
// BroadcastEvent never blocks, so it is safe to call while holding other
// locks. Slow clients whose queue fills up are disconnected.
package websocket
