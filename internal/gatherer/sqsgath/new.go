package sqsgath

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Sender is the part of *sqs.Client the gatherer needs.
type Sender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

var _ Sender = (*sqs.Client)(nil)

func New(client Sender, queueUrl string, runUuid string, logger *slog.Logger) *SqsGatherer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SqsGatherer{
		client:   client,
		queueUrl: queueUrl,
		runUuid:  runUuid,
		logger:   logger,
	}
}

// NewFromEnv builds an SQS client from the default AWS credential chain.
// An empty region leaves the choice to the chain.
func NewFromEnv(ctx context.Context, queueUrl string, region string, runUuid string, logger *slog.Logger) (*SqsGatherer, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return New(sqs.NewFromConfig(cfg), queueUrl, runUuid, logger), nil
}
