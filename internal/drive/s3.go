package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the part of the S3 API the source uses.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config configures the S3 backend. Endpoint and ForcePathStyle serve
// S3-compatible stores such as MinIO.
type S3Config struct {
	Bucket         string `env:"DRIVE_S3_BUCKET"`
	Region         string `env:"DRIVE_S3_REGION" envDefault:"eu-west-3"`
	AccessKeyID    string `env:"DRIVE_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"DRIVE_S3_SECRET_KEY"`
	Endpoint       string `env:"DRIVE_S3_ENDPOINT"`
	Prefix         string `env:"DRIVE_S3_PREFIX"`
	ForcePathStyle bool   `env:"DRIVE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// S3Source reads objects from a bucket, keyed by path under an optional
// prefix.
type S3Source struct {
	client S3Client
	bucket string
	prefix string
}

type S3Option func(*s3Options)

type s3Options struct {
	httpClient *http.Client
	s3Client   S3Client
}

// WithS3Client sets a pre-configured client.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

func WithS3HTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

func NewS3Source(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Source, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: DRIVE_S3_BUCKET and DRIVE_S3_REGION are required", ErrInvalidConfig)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	prefix, err := cleanPrefix(cfg.Prefix)
	if err != nil {
		return nil, err
	}
	return &S3Source{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

func (s *S3Source) Fetch(ctx context.Context, p string) ([]byte, error) {
	key, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	key = s.prefix + key

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, key)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}
	return data, nil
}

func cleanPrefix(prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	clean, err := cleanPath(prefix)
	if err != nil {
		return "", err
	}
	return clean + "/", nil
}

// classifyS3Error maps S3 failures to the package errors.
func classifyS3Error(err error, key string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errors.Join(ErrFetch, err)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s", ErrAccessDenied, key)
		default:
			return fmt.Errorf("%w: %s (code: %s): %w", ErrFetch, key, apiErr.ErrorCode(), err)
		}
	}
	return errors.Join(ErrFetch, err)
}
