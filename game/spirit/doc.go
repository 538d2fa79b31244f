// Package spirit generates festive content: jokes, trivia, activity
// suggestions, holiday messages, the New Year countdown and the
// naughty-or-nice code check.
package spirit
