package sqsgath

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

const sendTimeout = 10 * time.Second

func (s *SqsGatherer) send(msg any) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to marshal message", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueUrl),
		MessageBody: aws.String(string(b)),
	})
	if err != nil {
		s.logger.Error("failed to send message", "queue", s.queueUrl, "err", err)
	}
}
