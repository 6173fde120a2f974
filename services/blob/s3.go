package blobsvc

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type s3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	keyPrefix string
}

var _ core.FileStorage = (*s3Storage)(nil)

func NewS3Storage(ctx context.Context, conf *core.Config) (*s3Storage, error) {
	awsConf, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Blob.Region))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return &s3Storage{
		client:    s3.NewFromConfig(awsConf),
		bucket:    conf.Blob.Bucket,
		region:    conf.Blob.Region,
		keyPrefix: conf.Blob.KeyPrefix,
	}, nil
}

func (sto *s3Storage) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	key = sto.keyPrefix + key
	_, err := sto.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &sto.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "uploading to S3")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", sto.bucket, sto.region, key), nil
}
