package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"augeo-server/services/admin-api/internal/config"
)

// ErrStorageDisabled is returned when the grantor has no backing credentials.
// Callers map it to a 503; it is an operator problem, not a user error.
var ErrStorageDisabled = errors.New("blob storage backend is not configured; set MEDIA_S3_* to enable uploads")

// S3Grantor issues time-boxed presigned URLs for objects in S3-compatible
// storage. Each call produces a fresh grant; nothing is cached.
type S3Grantor struct {
	bucket    string
	client    *s3.Client
	presigner *s3.PresignClient
	log       zerolog.Logger
	disabled  bool
}

func NewS3Grantor(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Grantor, error) {
	logger := log.With().Str("component", "s3-grantor").Logger()
	grantor := &S3Grantor{
		bucket: strings.TrimSpace(cfg.S3Bucket),
		log:    logger,
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if grantor.bucket == "" || accessKey == "" || secretKey == "" {
		logger.Warn().Msg("MEDIA_S3_BUCKET or credentials are not set; media uploads will be disabled until configured")
		grantor.disabled = true
		return grantor, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.S3Endpoint != "" {
			return aws.Endpoint{
				URL:           cfg.S3Endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.S3Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	grantor.client = client
	grantor.presigner = s3.NewPresignClient(client)
	return grantor, nil
}

func (g *S3Grantor) ensureEnabled() error {
	if g.disabled {
		return ErrStorageDisabled
	}
	return nil
}

// GrantRead returns a read-scoped presigned GET URL for the named object.
func (g *S3Grantor) GrantRead(ctx context.Context, blobName string, ttl time.Duration) (string, error) {
	if err := g.ensureEnabled(); err != nil {
		return "", err
	}
	req, err := g.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(blobName),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign read for %s: %w", blobName, err)
	}
	return req.URL, nil
}

// GrantWrite returns a write-scoped presigned PUT URL for the named object.
// The grant covers exactly the given key and content type, nothing broader.
func (g *S3Grantor) GrantWrite(ctx context.Context, blobName, mimeType string, ttl time.Duration) (string, error) {
	if err := g.ensureEnabled(); err != nil {
		return "", err
	}
	req, err := g.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(blobName),
		ContentType: aws.String(mimeType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign write for %s: %w", blobName, err)
	}
	return req.URL, nil
}

// Delete removes the named object from the bucket.
func (g *S3Grantor) Delete(ctx context.Context, blobName string) error {
	if err := g.ensureEnabled(); err != nil {
		return err
	}
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(blobName),
	})
	if err != nil {
		return fmt.Errorf("delete blob %s: %w", blobName, err)
	}
	return nil
}

// Health performs a simple HeadBucket request.
func (g *S3Grantor) Health(ctx context.Context) error {
	if g.disabled {
		return nil
	}
	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(g.bucket)})
	return err
}
