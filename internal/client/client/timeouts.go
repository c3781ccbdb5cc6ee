package client

import "time"

// Timeouts are the per-operation-class budgets the Gateway hands to the
// Executor. They reflect how long the backend usually takes, not a retry
// policy.
type Timeouts struct {
	// Check bounds the session check.
	Check time.Duration
	// Default bounds ordinary mutations and lookups.
	Default time.Duration
	// Diagnose bounds text diagnosis.
	Diagnose time.Duration
	// DiagnoseImage bounds image diagnosis, the slowest call.
	DiagnoseImage time.Duration
	Chat          time.Duration
	History       time.Duration
	// Upload bounds profile picture uploads.
	Upload time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Check:         5 * time.Second,
		Default:       10 * time.Second,
		Diagnose:      60 * time.Second,
		DiagnoseImage: 90 * time.Second,
		Chat:          30 * time.Second,
		History:       30 * time.Second,
		Upload:        30 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTimeouts.
func (t Timeouts) withDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Check <= 0 {
		t.Check = d.Check
	}
	if t.Default <= 0 {
		t.Default = d.Default
	}
	if t.Diagnose <= 0 {
		t.Diagnose = d.Diagnose
	}
	if t.DiagnoseImage <= 0 {
		t.DiagnoseImage = d.DiagnoseImage
	}
	if t.Chat <= 0 {
		t.Chat = d.Chat
	}
	if t.History <= 0 {
		t.History = d.History
	}
	if t.Upload <= 0 {
		t.Upload = d.Upload
	}
	return t
}
