// Package console is the terminal presentation of Christmas Fun.
//
// Renderer turns karaoke directives into lipgloss-styled lines and
// KaraokeApp drives the interactive menus on top of an engine.Controller.
// StoryRunner plays the story with its tree and easter eggs, TrackerPrinter
// follows Santa's replay and SpiritPrinter prints the one-shot festive
// commands. Styles drop color automatically when output is not a terminal.
package console
