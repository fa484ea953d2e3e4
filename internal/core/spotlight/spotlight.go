// Package spotlight decides how a request to spotlight a project interacts with
// the project currently holding the spotlight.
// This is part of the Functional Core - all functions are pure with no I/O.
package spotlight

import "fmt"

// Policy selects what happens when another project already holds the spotlight.
type Policy string

const (
	// PolicyAuto moves the spotlight, clearing the previous holder in the same write.
	PolicyAuto Policy = "auto"
	// PolicyConfirm reports the conflict and requires an explicit retry.
	PolicyConfirm Policy = "confirm"
)

// ParsePolicy parses a configured policy name. Empty means PolicyAuto.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyAuto:
		return PolicyAuto, nil
	case PolicyConfirm:
		return PolicyConfirm, nil
	default:
		return "", fmt.Errorf("unknown spotlight policy %q (want %q or %q)", s, PolicyAuto, PolicyConfirm)
	}
}

// Holder identifies the project currently in the spotlight.
type Holder struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Outcome is the result of Decide.
type Outcome int

const (
	// NoConflict: nobody else holds the spotlight.
	NoConflict Outcome = iota
	// Takeover: another project holds it and will be cleared by the write.
	Takeover
	// NeedsConfirmation: another project holds it and the caller must confirm.
	NeedsConfirmation
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Takeover:
		return "takeover"
	case NeedsConfirmation:
		return "needs_confirmation"
	default:
		return "no_conflict"
	}
}

// Decide resolves a request to spotlight project target. current is the
// existing holder, or nil when there is none. A holder equal to target is not
// a conflict.
func Decide(target int, current *Holder, policy Policy, confirmed bool) Outcome {
	if current == nil || current.ID == target {
		return NoConflict
	}
	if policy == PolicyConfirm && !confirmed {
		return NeedsConfirmation
	}
	return Takeover
}
