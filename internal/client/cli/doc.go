// Package cli provides the interactive MedMate terminal client.
//
// App is a read-eval-print loop over the API gateway and the session
// coordinator: it prompts for input, runs one gateway call per command and
// prints the result. Errors are reported in user terms; an expired session
// drops back to anonymous and an insufficient-credits rejection offers the
// purchase flow.
//
// Commands that need a session are hidden from help and refused until the
// user logs in. Destructive commands ask for a typed "yes".
package cli
