// Package mcp provides the Model Context Protocol server for Christmas Fun.
//
// The server is a thin client over the REST API: every tool, resource and
// prompt that needs data makes an HTTP call to the api package instead of
// touching the services directly, so the stdio and /mcp HTTP transports see
// exactly what browsers see.
//
// MCP Tools:
//   - get_holiday_message: Festive message for a mood (cheerful, motivational, funny)
//   - check_naughty_or_nice: Evaluate a code snippet or commit message
//   - get_christmas_joke, get_christmas_trivia, suggest_festive_activity
//   - new_year_countdown: Time left until the new year or a given target
//   - list_carols: Carols available for karaoke
//   - create_karaoke_session: New karaoke session with optional carol and mode
//   - karaoke_session: One session's state, or the list of sessions
//   - karaoke_control: select, start, pause, reset, mode, back and speed
//   - submit_karaoke_answer: Fill in the blank of the current prompt
//   - karaoke_events: Journaled directives of a session
//   - santa_location: Santa's position on the Christmas Eve journey
//
// MCP Resources:
//   - christmas://story/en and christmas://story/es: the story lines as JSON
//   - christmas://ascii-art/tree: a plain text tree
//
// MCP Prompts:
//   - festive_code_review (code)
//   - christmas_commit_message (changes)
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
