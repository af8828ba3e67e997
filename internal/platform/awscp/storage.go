package awscp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/retry"
)

func (c *Client) findBucket(ctx context.Context, name string) (*registry.Resource, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check bucket %q: %w", name, err)
	}
	return bucketResource(name), nil
}

func (c *Client) createBucket(ctx context.Context, spec registry.BucketSpec) (*registry.Resource, error) {
	input := &s3.CreateBucketInput{Bucket: aws.String(spec.Name)}
	// us-east-1 rejects an explicit location constraint.
	if c.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(c.region),
		}
	}

	_, err := c.s3.CreateBucket(ctx, input)
	if err != nil && !IsDuplicate(err) {
		return nil, fmt.Errorf("failed to create bucket %q: %w", spec.Name, err)
	}
	return bucketResource(spec.Name), nil
}

// putObject uploads an artifact payload, retrying transient throttling but
// giving up immediately on auth failures.
func (c *Client) putObject(ctx context.Context, spec registry.ObjectSpec) (*registry.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Upload)
	defer cancel()

	err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(spec.Bucket),
			Key:           aws.String(spec.Key),
			Body:          bytes.NewReader(spec.Body),
			ContentLength: aws.Int64(int64(len(spec.Body))),
		})
		if err != nil && !IsThrottled(err) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s/%s: %w", spec.Bucket, spec.Key, err)
	}

	return &registry.Resource{
		Kind: registry.KindStorageObject,
		ID:   fmt.Sprintf("s3://%s/%s", spec.Bucket, spec.Key),
		Name: spec.Key,
	}, nil
}

func bucketResource(name string) *registry.Resource {
	return &registry.Resource{
		Kind: registry.KindStorageBucket,
		ID:   name,
		Name: name,
	}
}
