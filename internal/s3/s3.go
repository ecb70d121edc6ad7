// Package s3 is a narrow wrapper around the AWS SDK v2 S3 client used
// for archiving pipeline run artifacts.
package s3

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config carries the optional overrides on top of the standard AWS
// config/credential chain.
type Config struct {
	Region       string
	Profile      string
	UsePathStyle bool
}

// Client wraps the SDK client behind the few calls archiving needs.
type Client struct {
	client *awss3.Client
}

// New builds a client from the default AWS configuration chain.
func New(ctx context.Context, cfg Config) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	c := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Client{client: c}, nil
}

// Put uploads an object to bucket/key.
func (c *Client) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	in := &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	_, err := c.client.PutObject(ctx, in)
	return err
}

// Exists reports whether bucket/key already holds an object.
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	return false, err
}

// List returns the object keys under prefix, one page.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	out, err := c.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}
