package s3

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
	"gopkg.in/yaml.v2"
)

const TYPE string = "s3"

const clientStartupTimeout = 20 * time.Second

type Config struct {
	TimeoutInMillis int64  `yaml:"timeout_milliseconds"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKey       string `yaml:"access_key"`
	SecretKey       string `yaml:"secret_key"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

type uploaderAPI interface {
	Upload(ctx context.Context, input *awss3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Bucket uploads local files into a single S3 bucket. The underlying
// client is built lazily on first use, and at most once even when the
// shutdown hook and a trigger race to be first.
type Bucket struct {
	name            string
	region          string
	timeoutInMillis int64
	conf            *Config
	log             *slog.Logger
	clientOnce      sync.Once
	uploader        uploaderAPI
	clientErr       error
}

func New(l *slog.Logger, c *Config) (*Bucket, error) {
	if c.Bucket == "" {
		return nil, errors.New("s3 bucket name is mandatory")
	}

	return &Bucket{
		name:            c.Bucket,
		region:          c.Region,
		timeoutInMillis: c.TimeoutInMillis,
		conf:            c,
		log:             l.With(logger.ObjStorageTypeKey, TYPE),
	}, nil
}

func ParseConfig(confData []byte) (*Config, error) {
	conf := &Config{}

	err := yaml.Unmarshal(confData, conf)
	if err != nil {
		return conf, fmt.Errorf("error parsing S3 config: %w", err)
	}

	return conf, nil
}

func (bucket *Bucket) Upload(ctx context.Context, task *domain.UploadTask) (*domain.UploadResult, error) {
	uploader, err := bucket.getUploader()
	if err != nil {
		return nil, fmt.Errorf("error creating S3 client: %w", err)
	}

	if bucket.timeoutInMillis > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(bucket.timeoutInMillis)*time.Millisecond)
		defer cancel()
	}

	file, err := os.Open(task.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("error opening file to upload: %w", err)
	}
	defer file.Close()

	uploadInfo, err := uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket.name),
		Key:    aws.String(task.Key),
		Body:   file,
	})
	if err != nil {
		return nil, fmt.Errorf("error when uploading to S3: %w", err)
	}

	return &domain.UploadResult{
		Bucket:      bucket.name,
		Region:      bucket.region,
		Path:        task.Key,
		URL:         uploadInfo.Location,
		SizeInBytes: int(task.SizeInBytes),
	}, nil
}

func (bucket *Bucket) Type() string {
	return TYPE
}

func (bucket *Bucket) Name() string {
	return bucket.name
}

func (bucket *Bucket) getUploader() (uploaderAPI, error) {
	bucket.clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), clientStartupTimeout)
		defer cancel()

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(bucket.conf.Region),
		}

		// absent keys fall back to the SDK default credential chain
		if bucket.conf.AccessKey != "" && bucket.conf.SecretKey != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(bucket.conf.AccessKey, bucket.conf.SecretKey, ""),
			))
		}

		sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			bucket.clientErr = err
			return
		}

		client := awss3.NewFromConfig(sdkConfig, func(o *awss3.Options) {
			o.UsePathStyle = bucket.conf.ForcePathStyle
			if bucket.conf.Endpoint != "" {
				o.BaseEndpoint = aws.String(bucket.conf.Endpoint)
			}
		})

		bucket.uploader = manager.NewUploader(client)
	})

	return bucket.uploader, bucket.clientErr
}
