package tui

// Screen represents the confirmation screens
type Screen string

const (
	// ScreenSummary shows the classified report
	ScreenSummary Screen = "summary"
	// ScreenAttachments lists the attachments and lets the user drop some
	ScreenAttachments Screen = "attachments"
)

// Decision is the outcome of the confirmation prompt
type Decision int

const (
	// DecisionPending means the user has not answered yet
	DecisionPending Decision = iota
	// DecisionConfirm writes the report
	DecisionConfirm
	// DecisionDecline discards the report
	DecisionDecline
)

func (d Decision) String() string {
	switch d {
	case DecisionConfirm:
		return "confirm"
	case DecisionDecline:
		return "decline"
	default:
		return "pending"
	}
}

// AttachmentItem is one row of the attachment screen
type AttachmentItem struct {
	Name     string
	Size     int
	Included bool
}

const (
	keyDown = "down"
	keyUp   = "up"
)
