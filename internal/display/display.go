// Package display maps machine codes to analyst-facing words.
//
// Codes stay in JSON fields, map keys and comparisons; words go in
// tables, reports and log lines. Unknown codes pass through unchanged
// so stale vocabulary never hides data.
package display

import "fmt"

// --- Cognitive biases ---

var biases = map[string]string{
	"tunnel_vision":     "Tunnel Vision",
	"confirmation_bias": "Confirmation Bias",
	"logical_gap":       "Logical Gap",
	"stale_evidence":    "Stale Evidence",
}

// Bias returns the human-readable name for a bias code.
func Bias(code string) string {
	if name, ok := biases[code]; ok {
		return name
	}
	return code
}

// BiasWithCode returns "Tunnel Vision (tunnel_vision)" format for
// dual-audience contexts.
func BiasWithCode(code string) string {
	if name, ok := biases[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// --- Finding severities ---

var severities = map[string]string{
	"info":     "Info",
	"warning":  "Warning",
	"critical": "Critical",
}

// Severity returns the human-readable name for a severity code.
func Severity(code string) string {
	if name, ok := severities[code]; ok {
		return name
	}
	return code
}

// --- Threat domains ---

var domains = map[string]string{
	"cyber":       "Cyber",
	"information": "Information",
	"economic":    "Economic",
	"social":      "Social",
}

// Domain returns the human-readable name for a threat domain code.
func Domain(code string) string {
	if name, ok := domains[code]; ok {
		return name
	}
	return code
}

// --- Capability and intent levels ---

var capabilities = map[string]string{
	"none":     "None",
	"limited":  "Limited",
	"moderate": "Moderate",
	"advanced": "Advanced",
}

// Capability returns the human-readable name for a capability code.
func Capability(code string) string {
	if name, ok := capabilities[code]; ok {
		return name
	}
	return code
}

var intents = map[string]string{
	"none":      "None",
	"suspected": "Suspected",
	"confirmed": "Confirmed",
}

// Intent returns the human-readable name for an intent code.
func Intent(code string) string {
	if name, ok := intents[code]; ok {
		return name
	}
	return code
}

// --- Source reliability ---

var reliabilities = map[string]string{
	"unconfirmed":   "Unconfirmed",
	"single-source": "Single Source",
	"corroborated":  "Corroborated",
}

// Reliability returns the human-readable name for a reliability code.
func Reliability(code string) string {
	if name, ok := reliabilities[code]; ok {
		return name
	}
	return code
}

// --- Signal polarity ---

var polarities = map[string]string{
	"supports":    "Supports",
	"contradicts": "Contradicts",
}

// Polarity returns the human-readable name for a polarity code.
func Polarity(code string) string {
	if name, ok := polarities[code]; ok {
		return name
	}
	return code
}

// --- Pressure bands ---

// PressureBand names the range an IAP value falls in. Bands are display
// vocabulary only; decisions belong to the analyst, not to a bucket.
func PressureBand(v float64) string {
	switch {
	case v >= 0.75:
		return "Severe"
	case v >= 0.5:
		return "Elevated"
	case v >= 0.25:
		return "Moderate"
	default:
		return "Low"
	}
}

// PressureWithBand returns "0.76 (Severe)" format.
func PressureWithBand(v float64) string {
	return fmt.Sprintf("%.2f (%s)", v, PressureBand(v))
}
