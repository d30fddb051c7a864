// Package sla implements the CMS-mandated decision timeframes for prior
// authorization requests. All functions are pure: "now" is always an explicit
// argument, never read from a wall clock.
package sla

import (
	"fmt"
	"time"

	"github.com/SamSnead85/ProjectApexHealth-sub002/model"
)

// CMS-mandated PA decision timeframes
const (
	// UrgentWindow is the CMS 72-hour decision window for urgent requests
	UrgentWindow = 72 * time.Hour
	// StandardWindow is the standard request timeline
	StandardWindow = 7 * 24 * time.Hour
	// EmergentWindow matches the urgent window; CMS defines no separate
	// timeframe for emergent requests, so they inherit the stricter tier
	EmergentWindow = UrgentWindow
)

// DecisionWindow returns the maximum time allowed between submission and
// decision for the given urgency tier
func DecisionWindow(u model.Urgency) time.Duration {
	switch u {
	case model.UrgencyUrgent:
		return UrgentWindow
	case model.UrgencyEmergent:
		return EmergentWindow
	default:
		return StandardWindow
	}
}

// DeadlineFor computes the decision deadline for a request submitted at the
// given instant
func DeadlineFor(u model.Urgency, submitted time.Time) time.Time {
	return submitted.Add(DecisionWindow(u))
}

// TimeRemaining describes how much of the decision window is left. When
// Days > 0, Hours holds the hours within the final day; otherwise Hours is
// the total whole hours remaining.
type TimeRemaining struct {
	Overdue  bool `json:"overdue"`
	Days     int  `json:"days"`
	Hours    int  `json:"hours"`
	Critical bool `json:"critical"`
}

// Remaining converts a deadline and an observation instant into a
// human-facing urgency descriptor. The deadline instant itself is not yet
// overdue; Overdue is set only once now is strictly past it.
func Remaining(deadline, now time.Time) TimeRemaining {
	if deadline.Before(now) {
		return TimeRemaining{Overdue: true, Critical: true}
	}

	hours := int(deadline.Sub(now) / time.Hour)
	if hours < 24 {
		return TimeRemaining{Hours: hours, Critical: hours < 12}
	}
	return TimeRemaining{Days: hours / 24, Hours: hours % 24}
}

// String renders the descriptor the way the portal displays it
func (t TimeRemaining) String() string {
	if t.Overdue {
		return "Overdue"
	}
	if t.Days > 0 {
		return fmt.Sprintf("%dd %dh remaining", t.Days, t.Hours)
	}
	return fmt.Sprintf("%dh remaining", t.Hours)
}

// ProgressFraction returns how far through the decision window the request
// is, clamped to [0, 1]. Drives the SLA progress bar.
func ProgressFraction(submitted, deadline, now time.Time) float64 {
	window := deadline.Sub(submitted)
	if window <= 0 {
		return 1
	}

	frac := float64(now.Sub(submitted)) / float64(window)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
