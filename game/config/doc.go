// Package config provides the carol catalog and the application settings.
//
// The config package handles:
//   - Loading carols.json from a content directory or an embedded copy
//   - Carol validation and case-insensitive lookup
//   - Catalog listing with line, blank and duration summaries
//   - The optional christmas.yaml settings file
//
// Catalog Format:
//
// carols.json is an array of carols. Each carol has an id, a title, a
// difficulty (easy, medium or hard) and its lyrics, an ordered list of
// {"line", "time", "blank"} objects where time is the display duration in
// milliseconds and blank, when not null, is the word hidden in karaoke mode.
//
// Settings:
//
// Settings are layered: DefaultSettings, then christmas.yaml when present,
// then environment variables and command-line flags applied by main.
//
//	settings, err := config.LoadSettings("christmas.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	catalog, err := config.NewManagerFromDir(settings.DataDir)
package config
