// Package story loads the translated holiday story, holds the ASCII art
// catalogue and plays lines out with their configured delays.
package story
