package entity

const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyWarning = "warning"
	NotifyInfo    = "info"
)

// Notification is a transient toast. DurationMs <= 0 means sticky.
type Notification struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
