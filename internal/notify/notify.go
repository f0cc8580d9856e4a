package notify

import "log"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier is the single surface all user-visible messages go through.
// UI layers (dialog, toast, terminal) implement it; the core never renders.
type Notifier interface {
	// Notify presents a message and returns once the user has seen it.
	Notify(severity Severity, title, text string)
	// Toast presents a transient, non-blocking message.
	Toast(title, text string)
	// Confirm presents a yes/no prompt and blocks for the answer.
	Confirm(title, text string) bool
}

// LogNotifier writes notifications to a logger. Confirm answers with a
// fixed value, which is enough for non-interactive use and for tests.
type LogNotifier struct {
	Logger        *log.Logger
	ConfirmAnswer bool
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger, ConfirmAnswer: true}
}

func (n *LogNotifier) Notify(severity Severity, title, text string) {
	n.Logger.Printf("[%s] %s: %s", severity, title, text)
}

func (n *LogNotifier) Toast(title, text string) {
	n.Logger.Printf("[toast] %s: %s", title, text)
}

func (n *LogNotifier) Confirm(title, text string) bool {
	n.Logger.Printf("[confirm] %s: %s -> %v", title, text, n.ConfirmAnswer)
	return n.ConfirmAnswer
}
