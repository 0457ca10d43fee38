package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ericmlantz/backend/internal/common"
	"github.com/ericmlantz/backend/internal/server/config"
	"github.com/ericmlantz/backend/internal/server/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Upload describes a presigned PUT for one profile image.
type Upload struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	ObjectURL string    `json:"object_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MediaService hands out presigned upload URLs for profile photos and logos.
// Any S3 compatible store works; the default config targets a local MinIO.
type MediaService struct {
	config *config.Config
	now    func() time.Time
}

func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{config: cfg, now: time.Now}
}

// StorageKey lays objects out as <variant>s/<id>/<yyyy>/<mm>/<uuid>.
func StorageKey(variant models.Variant, accountID string, t time.Time) string {
	return fmt.Sprintf("%s/%s/%04d/%02d/%s", variant.Collection(), accountID, t.Year(), int(t.Month()), uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignPhotoUpload returns a presigned PUT for an image owned by accountID.
// contentType must be an image/* type.
func (s *MediaService) PresignPhotoUpload(ctx context.Context, variant models.Variant, accountID, contentType string) (*Upload, error) {
	if !variant.Valid() || accountID == "" || !strings.HasPrefix(contentType, "image/") {
		return nil, common.ErrorValidation
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	now := s.now()
	bucket := s.config.S3Bucket
	key := StorageKey(variant, accountID, now)
	validity := s.config.PresignValidityDuration

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &Upload{
		URL:       req.URL,
		ObjectKey: key,
		ObjectURL: strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + bucket + "/" + key,
		ExpiresAt: now.Add(validity),
	}, nil
}
