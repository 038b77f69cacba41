package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type smsRecorder struct {
	to []string
}

func (r *smsRecorder) SendMessage(to, msg string) error {
	r.to = append(r.to, to)
	return nil
}

type emailRecorder struct {
	to []string
}

func (r *emailRecorder) SendEmail(to, subject, body string) error {
	r.to = append(r.to, to)
	return nil
}

func TestSendInvitePrefersSMS(t *testing.T) {
	sms := &smsRecorder{}
	email := &emailRecorder{}
	channel := NewChannel(sms, email)

	err := channel.SendInvite("donna", "donna@example.com", "+12345678900")
	assert.Nil(t, err)
	assert.Equal(t, []string{"+12345678900"}, sms.to)
	assert.Empty(t, email.to)
}

func TestSendInviteFallsBackToEmail(t *testing.T) {
	sms := &smsRecorder{}
	email := &emailRecorder{}
	channel := NewChannel(sms, email)

	err := channel.SendInvite("harvey", "harvey@example.com", "")
	assert.Nil(t, err)
	assert.Empty(t, sms.to)
	assert.Equal(t, []string{"harvey@example.com"}, email.to)
}

func TestSendInviteWithNoReachableChannel(t *testing.T) {
	channel := NewChannel(&smsRecorder{}, &emailRecorder{})

	err := channel.SendInvite("mike", "", "")
	assert.NotNil(t, err)
}
