package tui

import (
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// storeChangedMsg is sent whenever the record store mutates
type storeChangedMsg struct{}

// noticeMsg carries a user-facing notification into the status bar
type noticeMsg struct {
	message  string
	severity driven.Severity
}

// clearNoticeMsg expires a notification after its display window
type clearNoticeMsg struct {
	seq int
}

// focusInputMsg requests focus on the query input
type focusInputMsg struct{}

// openLeadMsg opens the detail view for a lead
type openLeadMsg struct {
	id string
}

// opDoneMsg reports completion of a controller operation
type opDoneMsg struct {
	err error
}

// tickMsg drives the busy spinner
type tickMsg time.Time
