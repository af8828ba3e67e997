package awscp

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

func (c *Client) findDashboard(ctx context.Context, name string) (*registry.Resource, error) {
	out, err := c.cw.GetDashboard(ctx, &cloudwatch.GetDashboardInput{
		DashboardName: aws.String(name),
	})
	if err != nil {
		var notFound *cwtypes.DashboardNotFoundError
		if errors.As(err, &notFound) || IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dashboard %q: %w", name, err)
	}

	return &registry.Resource{
		Kind: registry.KindDashboard,
		ID:   aws.ToString(out.DashboardArn),
		Name: name,
	}, nil
}

func (c *Client) upsertDashboard(ctx context.Context, spec registry.DashboardSpec) (*registry.Resource, error) {
	out, err := c.cw.PutDashboard(ctx, &cloudwatch.PutDashboardInput{
		DashboardName: aws.String(spec.Name),
		DashboardBody: aws.String(spec.Body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert dashboard %q: %w", spec.Name, err)
	}
	if len(out.DashboardValidationMessages) > 0 {
		msg := out.DashboardValidationMessages[0]
		return nil, fmt.Errorf("dashboard %q rejected: %s", spec.Name, aws.ToString(msg.Message))
	}

	return &registry.Resource{
		Kind: registry.KindDashboard,
		ID:   spec.Name,
		Name: spec.Name,
	}, nil
}
