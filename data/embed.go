// Package data embeds the default content: the carol catalog, the Santa
// journey and the story translations.
package data

import "embed"

// Files holds carols.json, santa-journey.json and story.<lang>.json
//
//go:embed *.json
var Files embed.FS
