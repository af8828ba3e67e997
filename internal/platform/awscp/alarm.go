package awscp

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

func (c *Client) findAlertRule(ctx context.Context, name string) (*registry.Resource, error) {
	out, err := c.cw.DescribeAlarms(ctx, &cloudwatch.DescribeAlarmsInput{
		AlarmNames: []string{name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe alert rule %q: %w", name, err)
	}
	if len(out.MetricAlarms) == 0 {
		return nil, nil
	}

	alarm := out.MetricAlarms[0]
	return &registry.Resource{
		Kind: registry.KindAlertRule,
		ID:   aws.ToString(alarm.AlarmArn),
		Name: aws.ToString(alarm.AlarmName),
	}, nil
}

// upsertAlertRule writes the alarm definition; PutMetricAlarm overwrites an
// existing alarm of the same name, which is exactly the upsert contract.
func (c *Client) upsertAlertRule(ctx context.Context, spec registry.AlertRuleSpec) (*registry.Resource, error) {
	dims := make([]cwtypes.Dimension, 0, len(spec.Dimensions))
	for name, value := range spec.Dimensions {
		dims = append(dims, cwtypes.Dimension{
			Name:  aws.String(name),
			Value: aws.String(value),
		})
	}

	input := &cloudwatch.PutMetricAlarmInput{
		AlarmName:          aws.String(spec.Name),
		AlarmDescription:   aws.String(spec.Description),
		Namespace:          aws.String(spec.Namespace),
		MetricName:         aws.String(spec.Metric),
		Dimensions:         dims,
		Statistic:          cwtypes.Statistic(spec.Statistic),
		ComparisonOperator: comparisonOperator(spec.Comparator),
		Threshold:          aws.Float64(spec.Threshold),
		Period:             aws.Int32(int32(spec.EvaluationWindow)),
		EvaluationPeriods:  aws.Int32(int32(spec.Periods)),
	}
	if spec.ChannelID != "" {
		input.AlarmActions = []string{spec.ChannelID}
		input.OKActions = []string{spec.ChannelID}
	}

	if _, err := c.cw.PutMetricAlarm(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upsert alert rule %q: %w", spec.Name, err)
	}

	return &registry.Resource{
		Kind: registry.KindAlertRule,
		ID:   spec.Name,
		Name: spec.Name,
	}, nil
}

func comparisonOperator(c registry.Comparator) cwtypes.ComparisonOperator {
	switch c {
	case registry.ComparatorGreaterThan:
		return cwtypes.ComparisonOperatorGreaterThanThreshold
	case registry.ComparatorGreaterThanOrEqual:
		return cwtypes.ComparisonOperatorGreaterThanOrEqualToThreshold
	case registry.ComparatorLessThan:
		return cwtypes.ComparisonOperatorLessThanThreshold
	case registry.ComparatorLessThanOrEqual:
		return cwtypes.ComparisonOperatorLessThanOrEqualToThreshold
	default:
		return cwtypes.ComparisonOperatorGreaterThanThreshold
	}
}
