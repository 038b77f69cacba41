package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/safespeak/safespeak/shared"
)

type Mailer struct {
	client *ses.Client
	sender string
}

func NewMailer(config shared.SesConfig) (*Mailer, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), awsConfig.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("NewMailer: %v", err)
	}

	return &Mailer{client: ses.NewFromConfig(awsCfg), sender: config.Sender}, nil
}

func (m *Mailer) SendEmail(to, subject, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.sender),
	})
	if err != nil {
		return fmt.Errorf("Mailer.SendEmail: %v", err)
	}

	return nil
}
