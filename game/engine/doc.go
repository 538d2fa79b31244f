// Package engine provides the karaoke playback and scoring core.
//
// The engine package implements the sing-along mechanics including:
//   - Timed lyric playback with a progress indicator
//   - Fill-in-the-blank challenges in karaoke mode
//   - Score and accuracy tracking with performance tiers
//   - Carol selection and the session lifecycle
//   - Carol validation
//
// Core Types:
//
// Session holds the mutable state of one user singing one Carol. Controller
// owns the mode and carol selection and hands out sessions. Neither touches
// a display: every visible change is emitted as a Directive to a Renderer,
// and every delay goes through a Scheduler so tests can drive time with a
// ManualClock.
//
// Usage:
//
//	ctrl := engine.NewController(catalog,
//		engine.WithRenderer(renderer),
//		engine.WithFeedbackDelay(2*time.Second),
//	)
//	ctrl.SetMode(engine.ModeKaraoke)
//
//	if _, err := ctrl.SelectCarol("jingle-bells"); err != nil {
//		log.Fatal(err)
//	}
//	if err := ctrl.Start(); err != nil {
//		log.Fatal(err)
//	}
//
//	// later, when the renderer received a prompt directive
//	feedback, err := ctrl.SubmitAnswer("bells")
//
// Lifecycle:
//
// A controller starts in the selecting phase. Selecting a carol creates an
// idle session; Start moves it to playing. In karaoke mode a line with a
// blank moves the session to awaiting-answer until SubmitAnswer resolves it.
// Advancing past the last line finishes the session, reports the results and
// returns the controller to selecting.
package engine
