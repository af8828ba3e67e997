package awscp

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

// findChannel looks up a notification topic by name. Topic ARNs always end
// in ":<name>", so the listing is matched on that suffix.
func (c *Client) findChannel(ctx context.Context, name string) (*registry.Resource, error) {
	var nextToken *string
	for {
		out, err := c.sns.ListTopics(ctx, &sns.ListTopicsInput{NextToken: nextToken})
		if err != nil {
			return nil, fmt.Errorf("failed to list notification channels: %w", err)
		}
		for _, topic := range out.Topics {
			arn := aws.ToString(topic.TopicArn)
			if strings.HasSuffix(arn, ":"+name) {
				return channelResource(name, arn), nil
			}
		}
		if out.NextToken == nil {
			return nil, nil
		}
		nextToken = out.NextToken
	}
}

// ensureChannel creates the topic if absent and (re-)subscribes every
// configured address. Topic creation is natively idempotent; duplicate
// subscription attempts only re-send the confirmation, which is tolerated.
func (c *Client) ensureChannel(ctx context.Context, spec registry.ChannelSpec) (*registry.Resource, error) {
	out, err := c.sns.CreateTopic(ctx, &sns.CreateTopicInput{Name: aws.String(spec.Name)})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification channel %q: %w", spec.Name, err)
	}
	arn := aws.ToString(out.TopicArn)

	for _, addr := range spec.Subscribers {
		_, err := c.sns.Subscribe(ctx, &sns.SubscribeInput{
			TopicArn: aws.String(arn),
			Protocol: aws.String("email"),
			Endpoint: aws.String(addr),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to subscribe %q to channel %q: %w", addr, spec.Name, err)
		}
	}

	return channelResource(spec.Name, arn), nil
}

func channelResource(name, arn string) *registry.Resource {
	return &registry.Resource{
		Kind: registry.KindNotificationChannel,
		ID:   arn,
		Name: name,
	}
}
