// Package session provides the registry of live karaoke sessions.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session expiry with timer shutdown
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// crypto/rand and retried on collision. Callers may supply their own ID
// (letters, digits, dash and underscore). Lookups are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", func(id string) (*service.Session, error) {
//		journal := service.NewJournal(id, 0, hub)
//		ctrl := engine.NewController(catalog, engine.WithRenderer(journal))
//		return &service.Session{Controller: ctrl, Journal: journal}, nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Cleanup:
//
// Deleting or expiring a session stops its pending playback timers so a
// forgotten session never keeps ticking in the background.
package session
