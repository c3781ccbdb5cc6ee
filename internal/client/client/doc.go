// Package client talks to the MedMate backend.
//
// Executor runs one bounded HTTP call at a time: it attaches the session
// cookie, applies a per-call timeout and turns every failure into one of
// ErrTimeout, a *NetworkError (matching ErrNetwork), an *APIError or
// ErrInvalidResponse. It never retries.
//
// Gateway builds on Executor with one method per backend capability, each
// with a fixed endpoint, payload shape and timeout budget (see Timeouts).
// Client is the interface Gateway satisfies.
//
// InitDatabase and RunMigrations prepare the local SQLite file that holds
// remembered credentials.
package client
