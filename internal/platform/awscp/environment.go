package awscp

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

func (c *Client) findEnvironment(ctx context.Context, appName, envName string) (*registry.Resource, error) {
	input := &elasticbeanstalk.DescribeEnvironmentsInput{
		EnvironmentNames: []string{envName},
		IncludeDeleted:   aws.Bool(false),
	}
	if appName != "" {
		input.ApplicationName = aws.String(appName)
	}

	out, err := c.eb.DescribeEnvironments(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe environment %q: %w", envName, err)
	}
	if len(out.Environments) == 0 {
		return nil, nil
	}
	return environmentResource(out.Environments[0]), nil
}

// adoptRelease triggers the environment to roll over to the spec's version
// label. Creation of environments is deliberately out of reach: upserting a
// missing environment is an error, not a create.
func (c *Client) adoptRelease(ctx context.Context, spec registry.EnvironmentSpec) (*registry.Resource, error) {
	existing, err := c.findEnvironment(ctx, spec.ApplicationName, spec.Name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("environment %q does not exist; this pipeline does not create environments", spec.Name)
	}

	out, err := c.eb.UpdateEnvironment(ctx, &elasticbeanstalk.UpdateEnvironmentInput{
		EnvironmentName: aws.String(spec.Name),
		VersionLabel:    aws.String(spec.VersionLabel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update environment %q to %q: %w", spec.Name, spec.VersionLabel, err)
	}

	return &registry.Resource{
		Kind: registry.KindEnvironment,
		ID:   aws.ToString(out.EnvironmentId),
		Name: spec.Name,
		Attributes: map[string]string{
			registry.AttrCNAME:        aws.ToString(out.CNAME),
			registry.AttrHealth:       string(out.Health),
			registry.AttrStatus:       string(out.Status),
			registry.AttrVersionLabel: aws.ToString(out.VersionLabel),
		},
	}, nil
}

func environmentResource(env ebtypes.EnvironmentDescription) *registry.Resource {
	return &registry.Resource{
		Kind: registry.KindEnvironment,
		ID:   aws.ToString(env.EnvironmentId),
		Name: aws.ToString(env.EnvironmentName),
		Attributes: map[string]string{
			registry.AttrCNAME:        aws.ToString(env.CNAME),
			registry.AttrHealth:       string(env.Health),
			registry.AttrStatus:       string(env.Status),
			registry.AttrVersionLabel: aws.ToString(env.VersionLabel),
		},
	}
}
