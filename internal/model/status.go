package model

// Research job statuses. A job only moves forward: IN_PROGRESS ends in
// COMPLETE or FAILED; a COMPLETE company analysis may pass through UPDATING
// during a refresh and always lands back on COMPLETE.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusComplete   = "COMPLETE"
	StatusFailed     = "FAILED"
	StatusUpdating   = "UPDATING"
)

// Alert severities with their numeric rank used for stable sorting.
const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityCritical = "CRITICAL"
)

// SeverityLevel maps a severity string to its sort rank. Unknown severities
// rank below INFO.
func SeverityLevel(severity string) int {
	switch severity {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Alert read statuses, mutated only by the user.
const (
	AlertStatusUnread    = "UNREAD"
	AlertStatusRead      = "READ"
	AlertStatusDismissed = "DISMISSED"
)

// Entity lifecycle statuses for holdings and watchlist items.
const (
	EntityStatusActive   = "ACTIVE"
	EntityStatusArchived = "ARCHIVED"
)

// Company analysis verdicts.
const (
	VerdictBuy   = "BUY"
	VerdictWatch = "WATCH"
	VerdictPass  = "PASS"
)

// DefaultUserID identifies the single dashboard owner.
const DefaultUserID = "default"
