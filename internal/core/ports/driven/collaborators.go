package driven

// Severity classifies a user-facing notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Notifier delivers user-facing notifications. Fire-and-forget; no return
// value is consumed.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Navigator opens a detail view for a lead. Fire-and-forget.
type Navigator interface {
	OpenLead(id string)
}

// Focuser requests UI focus on the search input after input-clearing events.
// Best-effort; failures are ignored.
type Focuser interface {
	FocusSearchInput()
}
