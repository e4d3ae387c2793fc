// Package anticheat derives suspicion flags from client-reported typing
// telemetry. Both signals are self-reported by the UI with no
// independent measurement; treat the flags as advisory, not as a
// security control.
package anticheat

import (
	"strconv"
)

// FlagPaste is emitted when the client reported a paste event.
const FlagPaste = "Paste detected"

// cpsThreshold is the characters-per-second rate above which typing is
// flagged as unnatural.
const cpsThreshold = 15

// Detect evaluates both telemetry signals independently; either, both,
// or neither may fire. Absent fields yield no flag.
func Detect(pasted *bool, cps *float64) []string {
	var flags []string
	if pasted != nil && *pasted {
		flags = append(flags, FlagPaste)
	}
	if cps != nil && *cps > cpsThreshold {
		flags = append(flags, "Unnatural typing speed ("+strconv.FormatFloat(*cps, 'f', -1, 64)+" cps)")
	}
	return flags
}
