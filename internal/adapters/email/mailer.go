package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"

	"portalevents/internal/domain"
)

// Provider names.
const (
	ProviderSES    = "ses"
	ProviderResend = "resend"
	ProviderNoop   = "noop"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider     string
	FromAddress  string
	FromName     string
	ResendAPIKey string
	SES          SESConfig
}

// NewMailer creates a mailer from config. Provider "ses" uses AWS SES, "resend" the Resend API;
// "noop" or unknown uses a no-op mailer.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	source := config.FromAddress
	if config.FromName != "" {
		source = fmt.Sprintf("%s <%s>", config.FromName, config.FromAddress)
	}
	switch config.Provider {
	case ProviderSES:
		sesConfig := config.SES
		if sesConfig.Region == "" || sesConfig.AccessKeyID == "" || sesConfig.SecretAccessKey == "" {
			return nil, fmt.Errorf("ses mailer: region and credentials are required")
		}
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return newSESMailer(ses.NewFromConfig(awsCfg), source, logger), nil
	case ProviderResend:
		if config.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend mailer: api key is required")
		}
		return newResendMailer(NewResendClient(config.ResendAPIKey).Emails, source, logger), nil
	case ProviderNoop:
		return NewNoopMailer(logger), nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return NewNoopMailer(logger), nil
	}
}

// sesAPI is the subset of the SES client used by the mailer.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client sesAPI
	source string
	logger *slog.Logger
}

func newSESMailer(client sesAPI, source string, logger *slog.Logger) *sesMailer {
	return &sesMailer{client: client, source: source, logger: logger}
}

func (s *sesMailer) Provider() string { return ProviderSES }

func (s *sesMailer) Send(ctx context.Context, msg domain.Message) (string, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if msg.HTML != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(msg.HTML),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.Text != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(msg.Text),
			Charset: aws.String("UTF-8"),
		}
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to send email via SES: %w", err)
	}
	id := aws.ToString(result.MessageId)
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", id)
	return id, nil
}

type noopMailer struct {
	logger *slog.Logger
}

// NewNoopMailer returns a Mailer that only logs. It is the demo-mode mailer.
func NewNoopMailer(logger *slog.Logger) domain.Mailer {
	return &noopMailer{logger: logger}
}

func (n *noopMailer) Provider() string { return ProviderNoop }

func (n *noopMailer) Send(ctx context.Context, msg domain.Message) (string, error) {
	id := "noop-" + uuid.NewString()
	n.logger.InfoContext(ctx, "email would be sent (noop)", "to", msg.To, "reply_to", msg.ReplyTo, "subject", msg.Subject, "message_id", id)
	return id, nil
}
