package store

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/posterbot/internal/log"
	"github.com/samber/do"
)

const presignExpiry = 3600 * time.Second

// S3API is the slice of the s3 client the uploader needs.
type S3API interface {
	PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	Client S3API
	Bucket string
}

func NewS3Uploader(i *do.Injector) (Uploader, error) {
	return &S3Uploader{
		Client: do.MustInvoke[*s3.Client](i),
		Bucket: do.MustInvokeNamed[string](i, "bucket"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, params UploadParams) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("store").With(
		"bucket", u.Bucket,
		"key", params.Key,
		"content-type", params.ContentType,
	)
	log.Info("uploading to s3")

	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(params.Key),
		ContentType: aws.String(params.ContentType),
		Body:        bytes.NewReader(params.Data),
	})
	return err
}

// PresignAPI is the slice of the s3 presign client we use.
type PresignAPI interface {
	PresignGetObject(context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Presigner struct {
	Client PresignAPI
	Bucket string
}

func NewS3Presigner(i *do.Injector) (Presigner, error) {
	return &S3Presigner{
		Client: do.MustInvoke[*s3.PresignClient](i),
		Bucket: do.MustInvokeNamed[string](i, "bucket"),
	}, nil
}

func (p *S3Presigner) Presign(ctx context.Context, key string) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("store").With("bucket", p.Bucket, "key", key)
	log.Info("presigning get-object url")

	req, err := p.Client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = presignExpiry
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
