package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"dealerops/internal/config"
	"dealerops/internal/email"
	"dealerops/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	from        string
	recipients  []string
	frontendURL string
}

// NewSESSender creates an SES-backed IntakeNotifier.
func NewSESSender(ctx context.Context, cfg *config.EmailConfig) (port.IntakeNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		from:        fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		recipients:  cfg.Recipients,
		frontendURL: cfg.FrontendURL,
	}, nil
}

func (s *sesSender) NotifyBatchCommitted(ctx context.Context, notice port.BatchCommittedNotice) error {
	if len(s.recipients) == 0 {
		return nil
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject(notice))},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(email.HTMLBody(notice, s.frontendURL))},
					Text: &types.Content{Data: aws.String(email.TextBody(notice, s.frontendURL))},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
