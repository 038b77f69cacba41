package push

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyReportsDeliveryOutcome(t *testing.T) {
	stub := &SenderStub{Errs: map[string]error{"bad-token": errors.New("unregistered device")}}
	dispatcher := NewDispatcher(stub)

	delivered := dispatcher.Notify("good-token", "SOS Alert", "Location: 12.9,77.6", nil)
	assert.True(t, delivered)

	delivered = dispatcher.Notify("bad-token", "SOS Alert", "Location: 12.9,77.6", nil)
	assert.False(t, delivered, "provider errors should be absorbed, not raised")

	assert.Equal(t, 2, len(stub.Messages), "every call should reach the provider exactly once")
}

func TestNotifyWithoutSender(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	delivered := dispatcher.Notify("token", "title", "body", nil)
	assert.False(t, delivered)
}
