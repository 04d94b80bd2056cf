package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/igotm1lk/slackbot/internal/config"
)

// Service stores report screenshots in an S3-compatible bucket so Slack can
// render them from a public URL.
type Service struct {
	client     *s3.Client
	bucketName string
	publicURL  string
}

func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     cfg.S3AccessKey,
				SecretAccessKey: cfg.S3SecretKey,
			}, nil
		})),
		awsconfig.WithRegion("us-east-1"), // Region is usually required but often ignored with custom endpoints
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.S3ServiceURL != "" {
				return aws.Endpoint{
					URL:           cfg.S3ServiceURL,
					SigningRegion: "us-east-1",
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	publicURL := strings.TrimSuffix(cfg.S3PublicURL, "/")
	if publicURL == "" {
		// Path-style fallback against the service endpoint itself.
		publicURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.S3ServiceURL, "/"), cfg.S3BucketName)
	}

	return &Service{
		client:     client,
		bucketName: cfg.S3BucketName,
		publicURL:  publicURL,
	}, nil
}

// Upload stores the object and returns the URL Slack should fetch it from.
func (s *Service) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// Object is a stored screenshot as seen by the cleanup loop.
type Object struct {
	Key          string
	LastModified time.Time
}

// List returns all objects under the given prefix.
func (s *Service) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			o := Object{}
			if obj.Key != nil {
				o.Key = *obj.Key
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}

	return objects, nil
}

func (s *Service) DeleteFile(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	return err
}
