// Package awscp implements the resource registry against the AWS control
// plane: EC2 security groups for security boundaries, S3 for artifact
// storage, Elastic Beanstalk for applications, releases and environments,
// CloudWatch for alert rules and dashboards, and SNS for notification
// channels.
//
// Every write path is find-first: an existing resource with the same
// idempotency key is returned unchanged, and duplicate grants or
// subscriptions are swallowed rather than surfaced as errors.
package awscp
