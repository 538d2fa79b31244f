// Package tracker replays Santa's Christmas Eve journey stop by stop and
// answers where he is at a given wall-clock time.
package tracker
