// Package service provides the business logic layer for karaoke sessions.
//
// The service package implements:
//   - Multi-session karaoke management
//   - Carol catalog access
//   - Playback control and answer submission
//   - A per-session journal of render directives
//   - Session lifecycle management
//
// Core Interfaces:
//
// KaraokeService is the main service interface used by the REST API.
// SessionManager handles session creation, retrieval and expiry.
// CarolCatalog provides the validated carols loaded at startup.
// Broadcaster receives every directive so it can be pushed to websocket
// clients watching the session.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the karaoke engine. Each session owns an engine.Controller with its
// own timers, so sessions play independently of one another.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	catalog, _ := config.NewManager(data.Files)
//	karaoke := service.NewKaraokeService(sessionMgr, catalog,
//		service.WithBroadcaster(hub),
//	)
//
//	info, err := karaoke.CreateSession(ctx, service.CreateSessionRequest{
//		CarolID: "jingle-bells",
//		Mode:    engine.ModeKaraoke,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	info, err = karaoke.Start(ctx, info.ID)
//
// Journal:
//
// Every directive a session emits is appended to its Journal with a
// sequence number and a UUID. Clients that cannot hold a websocket open
// poll GetEvents with the last sequence they saw.
package service
