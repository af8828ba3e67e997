package awscp

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

// findBoundary looks up a security group by name, scoped to the partition
// when one is given. The name+partition pair is the idempotency key.
func (c *Client) findBoundary(ctx context.Context, name, partitionID string) (*registry.Resource, error) {
	filters := []ec2types.Filter{
		{Name: aws.String("group-name"), Values: []string{name}},
	}
	if partitionID != "" {
		filters = append(filters, ec2types.Filter{Name: aws.String("vpc-id"), Values: []string{partitionID}})
	}

	out, err := c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{Filters: filters})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe security boundary %q: %w", name, err)
	}
	if len(out.SecurityGroups) == 0 {
		return nil, nil
	}

	return boundaryResource(out.SecurityGroups[0]), nil
}

func (c *Client) createBoundary(ctx context.Context, spec registry.BoundarySpec) (*registry.Resource, error) {
	existing, err := c.findBoundary(ctx, spec.Name, spec.PartitionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	input := &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(spec.Name),
		Description: aws.String(spec.Description),
	}
	if spec.PartitionID != "" {
		input.VpcId = aws.String(spec.PartitionID)
	}

	created, err := c.ec2.CreateSecurityGroup(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create security boundary %q: %w", spec.Name, err)
	}
	groupID := aws.ToString(created.GroupId)

	if len(spec.Rules) > 0 {
		if err := c.authorizeIngress(ctx, groupID, rulePermissions(spec.Rules)); err != nil {
			return nil, fmt.Errorf("failed to add rules to boundary %q: %w", spec.Name, err)
		}
	}

	return &registry.Resource{
		Kind: registry.KindSecurityBoundary,
		ID:   groupID,
		Name: spec.Name,
		Attributes: map[string]string{
			registry.AttrPartitionID: spec.PartitionID,
		},
	}, nil
}

// createGrant authorizes the source boundary to reach the target boundary on
// the grant's port. Re-issuing an identical grant is swallowed.
func (c *Client) createGrant(ctx context.Context, spec registry.GrantSpec) (*registry.Resource, error) {
	target, err := c.findBoundary(ctx, spec.BoundaryName, spec.PartitionID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("grant target boundary %q not found", spec.BoundaryName)
	}

	perm := ec2types.IpPermission{
		IpProtocol: aws.String(spec.Protocol),
		FromPort:   aws.Int32(int32(spec.Port)),
		ToPort:     aws.Int32(int32(spec.Port)),
		UserIdGroupPairs: []ec2types.UserIdGroupPair{
			{GroupId: aws.String(spec.SourceBoundaryID)},
		},
	}
	if err := c.authorizeIngress(ctx, target.ID, []ec2types.IpPermission{perm}); err != nil {
		return nil, fmt.Errorf("failed to grant %s/%d on boundary %q: %w",
			spec.Protocol, spec.Port, spec.BoundaryName, err)
	}

	return &registry.Resource{
		Kind: registry.KindAccessGrant,
		ID:   fmt.Sprintf("%s:%s:%d", target.ID, spec.Protocol, spec.Port),
		Name: spec.BoundaryName,
	}, nil
}

func (c *Client) authorizeIngress(ctx context.Context, groupID string, perms []ec2types.IpPermission) error {
	_, err := c.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: perms,
	})
	if err != nil && !IsDuplicate(err) {
		return err
	}
	return nil
}

func rulePermissions(rules []registry.AccessRule) []ec2types.IpPermission {
	perms := make([]ec2types.IpPermission, 0, len(rules))
	for _, r := range rules {
		perms = append(perms, ec2types.IpPermission{
			IpProtocol: aws.String(r.Protocol),
			FromPort:   aws.Int32(int32(r.Port)),
			ToPort:     aws.Int32(int32(r.Port)),
			IpRanges:   []ec2types.IpRange{{CidrIp: aws.String(r.Source)}},
		})
	}
	return perms
}

func boundaryResource(sg ec2types.SecurityGroup) *registry.Resource {
	return &registry.Resource{
		Kind: registry.KindSecurityBoundary,
		ID:   aws.ToString(sg.GroupId),
		Name: aws.ToString(sg.GroupName),
		Attributes: map[string]string{
			registry.AttrPartitionID: aws.ToString(sg.VpcId),
		},
	}
}
