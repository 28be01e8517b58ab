// Package diagnostics defines the structured runtime-condition records the
// process entrypoint, drivers, and control surface surface to an operator
// (over /diag and in logs), following
// ledcube/internal/diagnostics/diag.go.
package diagnostics

// Severity grades how urgently a Diagnostic deserves attention.
type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is a structured record of a runtime condition: a driver
// falling back to the simulator, a full intent channel dropping a control
// message, and similar events the render loop itself is too hot a path to
// log directly.
type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// ChannelFull builds the diagnostic surfaced when a control-channel send
// is rejected because the intent channel's ring buffer is saturated.
func ChannelFull(capacity int) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     "intent_channel_full",
		Summary:  "control message dropped: intent channel is full",
		Detail:   "the renderer is not draining intents fast enough to keep up with the control channel",
		LikelyCauses: []string{
			"render loop is stalled or running slower than its frame period",
			"a control client is sending intents faster than the configured channel capacity can absorb",
		},
		SuggestedFixes: []string{
			"reduce the rate of outgoing control messages",
			"increase the intent channel capacity",
		},
		Evidence: map[string]any{"capacity": capacity},
	}
}

// DriverFallback builds the diagnostic surfaced when the configured output
// driver fails to construct and the process falls back to the simulator.
func DriverFallback(driver string, cause error) Diagnostic {
	return Diagnostic{
		Severity: Warn,
		Code:     "driver_fallback_to_sim",
		Summary:  "falling back to the simulator driver",
		Detail:   cause.Error(),
		LikelyCauses: []string{
			"requested driver '" + driver + "' is unavailable on this platform or hardware",
		},
		SuggestedFixes: []string{
			"verify the SPI device path and permissions",
			"run with --driver sim if no hardware is attached",
		},
	}
}
