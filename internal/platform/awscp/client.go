package awscp

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

// Client implements registry.Client using the AWS SDK service clients.
type Client struct {
	ec2 *ec2.Client
	s3  *s3.Client
	eb  *elasticbeanstalk.Client
	cw  *cloudwatch.Client
	sns *sns.Client

	region   string
	timeouts *config.Timeouts
}

var _ registry.Client = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	staticAccessKey string
	staticSecretKey string
	timeouts        *config.Timeouts
}

// WithStaticCredentials bypasses the default credential chain, mainly for
// local operator configuration.
func WithStaticCredentials(accessKey, secretKey string) ClientOption {
	return func(o *clientOptions) {
		o.staticAccessKey = accessKey
		o.staticSecretKey = secretKey
	}
}

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(o *clientOptions) {
		o.timeouts = t
	}
}

// NewClient creates a registry client for the given region. Credentials
// resolve through the SDK default chain (environment variables in CI, shared
// config locally) unless static credentials are supplied.
func NewClient(ctx context.Context, region string, opts ...ClientOption) (*Client, error) {
	o := &clientOptions{timeouts: config.LoadTimeouts()}
	for _, opt := range opts {
		opt(o)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if o.staticAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.staticAccessKey, o.staticSecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		ec2:      ec2.NewFromConfig(cfg),
		s3:       s3.NewFromConfig(cfg),
		eb:       elasticbeanstalk.NewFromConfig(cfg),
		cw:       cloudwatch.NewFromConfig(cfg),
		sns:      sns.NewFromConfig(cfg),
		region:   region,
		timeouts: o.timeouts,
	}, nil
}

// Find implements registry.Client. Absence is (nil, nil), never an error.
func (c *Client) Find(ctx context.Context, f registry.Filter) (*registry.Resource, error) {
	switch f.Kind {
	case registry.KindSecurityBoundary:
		return c.findBoundary(ctx, f.Name, f.PartitionID)
	case registry.KindStorageBucket:
		return c.findBucket(ctx, f.Name)
	case registry.KindApplication:
		return c.findApplication(ctx, f.Name)
	case registry.KindRelease:
		return c.findRelease(ctx, f.Extra[registry.FilterApplication], f.Name)
	case registry.KindEnvironment:
		return c.findEnvironment(ctx, f.Extra[registry.FilterApplication], f.Name)
	case registry.KindAlertRule:
		return c.findAlertRule(ctx, f.Name)
	case registry.KindDashboard:
		return c.findDashboard(ctx, f.Name)
	case registry.KindNotificationChannel:
		return c.findChannel(ctx, f.Name)
	default:
		return nil, &registry.UnsupportedSpecError{Op: "find", Kind: f.Kind}
	}
}

// Create implements registry.Client. Each per-kind path is find-first and
// returns the existing resource when the idempotency key is already taken.
func (c *Client) Create(ctx context.Context, s registry.Spec) (*registry.Resource, error) {
	switch spec := s.(type) {
	case registry.BoundarySpec:
		return c.createBoundary(ctx, spec)
	case registry.GrantSpec:
		return c.createGrant(ctx, spec)
	case registry.BucketSpec:
		return c.createBucket(ctx, spec)
	case registry.ObjectSpec:
		return c.putObject(ctx, spec)
	case registry.ApplicationSpec:
		return c.createApplication(ctx, spec)
	case registry.ReleaseSpec:
		return c.createRelease(ctx, spec)
	case registry.ChannelSpec:
		return c.ensureChannel(ctx, spec)
	default:
		return nil, &registry.UnsupportedSpecError{Op: "create", Kind: s.SpecKind()}
	}
}

// Upsert implements registry.Client with overwrite semantics by name.
func (c *Client) Upsert(ctx context.Context, s registry.Spec) (*registry.Resource, error) {
	switch spec := s.(type) {
	case registry.AlertRuleSpec:
		return c.upsertAlertRule(ctx, spec)
	case registry.DashboardSpec:
		return c.upsertDashboard(ctx, spec)
	case registry.EnvironmentSpec:
		return c.adoptRelease(ctx, spec)
	case registry.ChannelSpec:
		return c.ensureChannel(ctx, spec)
	default:
		return nil, &registry.UnsupportedSpecError{Op: "upsert", Kind: s.SpecKind()}
	}
}

// WaitUntil implements registry.Client as a blocking poll-sleep-poll loop at
// the configured fixed interval. The control plane exposes no usable push
// notifications, so polling is the suspension mechanism.
func (c *Client) WaitUntil(ctx context.Context, f registry.Filter, p registry.Predicate, timeout time.Duration) (*registry.Resource, error) {
	deadline := time.Now().Add(timeout)
	var last *registry.Resource

	for {
		res, err := c.Find(ctx, f)
		if err != nil {
			return last, fmt.Errorf("polling %s %q: %w", f.Kind, f.Name, err)
		}
		last = res

		if res != nil {
			done, err := p(res)
			if err != nil {
				return res, err
			}
			if done {
				return res, nil
			}
		}

		if time.Now().After(deadline) {
			return last, fmt.Errorf("waiting for %s %q: %w", f.Kind, f.Name, registry.ErrWaitTimeout)
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(c.timeouts.PollInterval):
		}
	}
}
