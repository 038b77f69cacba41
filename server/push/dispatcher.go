package push

import "github.com/safespeak/safespeak/server/logger"

var logg = logger.NewLogger()

// Dispatcher sends push notifications as a best-effort side channel.
// Provider errors are absorbed and logged here - they must never block
// the write path that triggered the notification.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Notify makes exactly one delivery attempt and reports the outcome.
// It never returns an error.
func (d *Dispatcher) Notify(token, title, body string, data map[string]string) bool {
	if d.sender == nil {
		logg.Warnf("push delivery skipped, no sender configured: title=%q", title)
		return false
	}

	err := d.sender.Send(Message{To: token, Title: title, Body: body, Data: data})
	if err != nil {
		logg.Errorf("push delivery failed: %v", err)
		return false
	}

	return true
}
