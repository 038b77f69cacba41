package invite

import (
	"fmt"
)

const appDownloadLink = "https://safespeak.app/download"

type SMSSender interface {
	SendMessage(to, msg string) error
}

type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// Channel delivers out-of-band invites to people named as emergency
// contacts before they have an account. SMS is preferred, email is the
// fallback when no phone number is on record.
type Channel struct {
	sms   SMSSender
	email EmailSender
}

func NewChannel(sms SMSSender, email EmailSender) *Channel {
	return &Channel{sms: sms, email: email}
}

func (c *Channel) SendInvite(name, email, phone string) error {
	msg := fmt.Sprintf(
		"Hi %v, you've been added as an emergency contact on SafeSpeak. "+
			"Download the app and log in with your phone/email. App: %v",
		name, appDownloadLink)

	if phone != "" && c.sms != nil {
		return c.sms.SendMessage(phone, msg)
	}

	if email != "" && c.email != nil {
		return c.email.SendEmail(email, "You're an emergency contact", msg)
	}

	return fmt.Errorf("no deliverable channel for invite to %q", name)
}
