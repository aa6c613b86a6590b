package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsSqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
	"gopkg.in/yaml.v2"
)

const TYPE string = "sqs"
const startupTimeout = 20 * time.Second
const sendTimeout = 30 * time.Second

type sqsSendMessageAPI interface {
	SendMessage(context.Context, *awsSqs.SendMessageInput, ...func(*awsSqs.Options)) (*awsSqs.SendMessageOutput, error)
}

type Message struct {
	SchemaVersion string `json:"schema_version"`
	Bucket        Bucket `json:"bucket"`
	Object        Object `json:"object"`
}

type Object struct {
	Path            string `json:"path"`
	FullURL         string `json:"full_url"`
	SizeInBytes     int    `json:"size_in_bytes"`
	CompressionType string `json:"compression_algorithm,omitempty"`
	SavedAt         int64  `json:"saved_at"`
}

type Bucket struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type Config struct {
	URL      string `yaml:"url"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// Queue notifies an SQS queue about every file that finished uploading.
type Queue struct {
	log      *slog.Logger
	client   sqsSendMessageAPI
	queueURL string
}

func New(l *slog.Logger, c *Config) (*Queue, error) {
	ctx, cancelFunc := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelFunc()

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(c.Endpoint))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("couldn't load default AWS configuration: %w", err)
	}

	queueURL := c.URL
	if !validURL(queueURL) {
		return nil, fmt.Errorf("invalid url for SQS %s", queueURL)
	}

	sqsClient := awsSqs.NewFromConfig(sdkConfig)

	return &Queue{
		log:      l.With(logger.ExternalQueueTypeKey, TYPE),
		client:   sqsClient,
		queueURL: queueURL,
	}, nil
}

func ParseConfig(confData []byte) (*Config, error) {
	conf := &Config{}

	err := yaml.Unmarshal(confData, conf)
	if err != nil {
		return conf, fmt.Errorf("error parsing SQS config: %w", err)
	}

	return conf, nil
}

func (queue *Queue) Enqueue(msgContext *domain.MessageContext) error {
	msg := &Message{
		SchemaVersion: domain.MessageSchemaVersion,
		Bucket: Bucket{
			Name:   msgContext.Bucket,
			Region: msgContext.Region,
		},
		Object: Object{
			Path:            msgContext.Path,
			FullURL:         msgContext.URL,
			SizeInBytes:     msgContext.SizeInBytes,
			CompressionType: msgContext.CompressionType,
			SavedAt:         msgContext.SavedAt,
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error generating SQS message body: %w", err)
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), sendTimeout)
	defer cancelFunc()

	_, err = queue.client.SendMessage(ctx, &awsSqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    aws.String(queue.queueURL),
	})
	if err != nil {
		return fmt.Errorf("error sending SQS message: %w", err)
	}

	queue.log.Debug("sent message to SQS", "object_path", msgContext.Path)
	return nil
}

func (queue *Queue) Type() string {
	return TYPE
}

func (queue *Queue) Name() string {
	return queue.queueURL
}

func validURL(maybeURL string) bool {
	parsed, err := url.Parse(maybeURL)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}
