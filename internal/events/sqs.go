package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/codequiz/runner/api"
)

type sqsPublisher struct {
	sqsClient *sqs.Client
	queueUrl  string
}

// NewSqsPublisher publishes result events to an SQS queue.
func NewSqsPublisher(ctx context.Context, region, queueUrl string) (Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &sqsPublisher{
		sqsClient: sqs.NewFromConfig(cfg),
		queueUrl:  queueUrl,
	}, nil
}

func (p *sqsPublisher) PublishSubmissionGraded(ev api.SubmissionGraded) {
	p.send(ev)
}

func (p *sqsPublisher) PublishRunFinished(ev api.RunFinished) {
	ev.Output = trimStrToRect(ev.Output, api.MaxEventOutputHeight, api.MaxEventOutputWidth)
	p.send(ev)
}

func (p *sqsPublisher) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal event", "error", err)
		return
	}

	_, err = p.sqsClient.SendMessage(context.TODO(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueUrl),
		MessageBody: aws.String(string(b)),
	})
	if err != nil {
		slog.Error("failed to send event to SQS", "queue", p.queueUrl, "error", err)
	}
}
