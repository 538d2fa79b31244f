// Package api exposes the karaoke service, the festive utilities and the
// Santa tracker over HTTP.
//
// Endpoints:
//
// Carols:
//   - GET /api/carols - List carols with line and blank counts
//   - GET /api/carols/{id} - Full lyrics of one carol
//
// Sessions:
//   - POST /api/sessions - Create a session {id?, carol_id?, random?, mode?, speed?, auto_start?}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Session snapshot
//   - DELETE /api/sessions/{id} - Stop and remove a session
//
// Karaoke:
//   - POST /api/sessions/{id}/select {carol_id | random}
//   - POST /api/sessions/{id}/start | pause | reset | mode | back
//   - POST /api/sessions/{id}/speed {speed}
//   - POST /api/sessions/{id}/answer {answer}
//   - GET /api/sessions/{id}/events - Journal (?page&limit&order&since)
//   - GET /api/sessions/{id}/qr - PNG QR code linking to the browser view
//
// Spirit, story and Santa:
//   - GET /api/spirit/joke | trivia | activity | countdown?target= | message?mood=
//   - POST /api/spirit/naughty-or-nice {text}
//   - GET /api/story, /api/story/{lang}, /api/art/{name}
//   - GET /api/santa/journey | state | location?at=
//   - POST /api/santa/start | pause | reset | speed
//
// WebSocket:
//   - GET /ws?session={id} - Directive stream of one session
//   - GET /ws?channel=santa - Santa tracker events
//
// Errors are returned as JSON {"error": "..."}: 404 for unknown sessions,
// carols and content, 409 for actions the current state does not allow,
// 400 for malformed input.
package api
