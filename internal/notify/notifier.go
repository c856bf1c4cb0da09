package notify

import (
	"fmt"

	"github.com/DjordjeVuckovic/sportsmap/internal/importer"
)

// Severity grades a finished batch for the calling UI. The three tiers let
// the caller decide escalation without re-deriving ratios.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	infoThreshold    = 0.8
	warningThreshold = 0.5
)

// Event is the notification contract at the core's boundary. The caller
// owns timers, display and dismissal; the core owns only the data and the
// moment it becomes available.
type Event struct {
	Severity Severity              `json:"severity"`
	Message  string                `json:"message"`
	Result   *importer.BatchResult `json:"result"`
	// AutoDismiss is false for error-level summaries, which should stay on
	// screen until the user acts.
	AutoDismiss bool `json:"autoDismiss"`
}

// Classify grades a success ratio into a severity tier.
func Classify(successRatio float64) Severity {
	switch {
	case successRatio >= infoThreshold:
		return SeverityInfo
	case successRatio >= warningThreshold:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// BatchCompleted builds the terminal event for a finished batch.
func BatchCompleted(result *importer.BatchResult) Event {
	severity := Classify(result.SuccessRatio())

	message := fmt.Sprintf("Imported %d of %d records", result.SuccessCount, result.TotalCount)
	if result.DuplicateSkipCount > 0 {
		message += fmt.Sprintf(" (%d already existed)", result.DuplicateSkipCount)
	}
	if result.FailureCount > 0 {
		message += fmt.Sprintf(", %d failed", result.FailureCount)
	}
	if len(result.NewlyCreated) > 0 {
		message += fmt.Sprintf("; created %d new side entities", len(result.NewlyCreated))
	}

	return Event{
		Severity:    severity,
		Message:     message,
		Result:      result,
		AutoDismiss: severity != SeverityError,
	}
}
