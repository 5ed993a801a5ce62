// services/providers.go
package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"groompro-backend/models"
)

// TwilioSMSProvider sends SMS messages through Twilio.
type TwilioSMSProvider struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSProvider() *TwilioSMSProvider {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioSMSProvider{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (p *TwilioSMSProvider) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	if p.from == "" {
		return "", &ProviderError{
			Class: models.ErrorConfiguration,
			Err:   errors.New("TWILIO_PHONE_NUMBER not set"),
		}
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(p.from)
	params.SetBody(body)

	resp, err := p.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send failed: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// SESEmailProvider sends email through AWS SES.
type SESEmailProvider struct {
	client *ses.Client
	from   string
}

func NewSESEmailProvider(ctx context.Context) (*SESEmailProvider, error) {
	region := os.Getenv("AWS_REGION")
	from := os.Getenv("SES_FROM_EMAIL")
	if from == "" {
		return nil, errors.New("SES_FROM_EMAIL not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESEmailProvider{
		client: ses.NewFromConfig(awsCfg),
		from:   from,
	}, nil
}

func (p *SESEmailProvider) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(p.from),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := p.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ses send failed: %w", err)
	}
	if result.MessageId == nil {
		return "", nil
	}
	return *result.MessageId, nil
}
