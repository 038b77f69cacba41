package twilio

import (
	"github.com/safespeak/safespeak/server/logger"
	"github.com/safespeak/safespeak/shared"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var logg = logger.NewLogger()

type ClientWrapper struct {
	client *twilio.RestClient
	config shared.TwilioConfig
}

func NewClient(config shared.TwilioConfig) *ClientWrapper {
	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &ClientWrapper{
		client: client,
		config: config,
	}
}

func (cw *ClientWrapper) SendMessage(to, msg string) error {
	params := &openapi.CreateMessageParams{}
	params.SetMessagingServiceSid(cw.config.MessagingServiceSid)
	params.SetTo(to)
	params.SetBody(msg)

	resp, err := cw.client.ApiV2010.CreateMessage(params)
	if err != nil {
		return err
	}

	if resp.ErrorMessage != nil {
		logg.Warnf("twilio message to %v accepted with error: %v", to, *resp.ErrorMessage)
	}

	return nil
}
