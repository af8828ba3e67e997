package registry

import (
	"context"
	"time"
)

// Kind identifies a resource kind on the remote control plane.
type Kind string

const (
	KindSecurityBoundary    Kind = "security-boundary"
	KindAccessGrant         Kind = "access-grant"
	KindStorageBucket       Kind = "storage-bucket"
	KindStorageObject       Kind = "storage-object"
	KindApplication         Kind = "application"
	KindRelease             Kind = "release"
	KindEnvironment         Kind = "environment"
	KindAlertRule           Kind = "alert-rule"
	KindDashboard           Kind = "dashboard"
	KindNotificationChannel Kind = "notification-channel"
)

// Resource is the structured view of a remote resource returned by the
// registry. Attributes carries kind-specific fields (health, cname, arn, ...)
// so callers never parse free text.
type Resource struct {
	Kind       Kind
	ID         string
	Name       string
	Attributes map[string]string
}

// Attr returns the named attribute or the empty string.
func (r *Resource) Attr(key string) string {
	if r == nil || r.Attributes == nil {
		return ""
	}
	return r.Attributes[key]
}

// Well-known attribute keys.
const (
	AttrCNAME        = "cname"
	AttrHealth       = "health"
	AttrStatus       = "status"
	AttrVersionLabel = "version_label"
	AttrPartitionID  = "partition_id"
)

// Filter selects a single resource by kind and idempotency key.
// Name plus PartitionID is the idempotency key for partition-scoped kinds;
// Extra narrows kinds that are scoped to a parent resource (for example an
// environment within an application).
type Filter struct {
	Kind        Kind
	Name        string
	PartitionID string
	Extra       map[string]string
}

// Extra filter keys.
const (
	FilterApplication = "application"
)

// Spec is implemented by the typed per-kind spec structs in specs.go.
type Spec interface {
	// SpecKind returns the resource kind this spec creates.
	SpecKind() Kind

	// SpecName returns the resource name, the idempotency key within the
	// spec's kind and partition.
	SpecName() string
}

// Predicate decides whether a polled resource has reached a terminal state.
// Returning done ends the wait; returning an error aborts it.
type Predicate func(r *Resource) (done bool, err error)

// Client is the thin, provider-agnostic interface every pipeline component
// uses instead of talking to the control plane directly.
type Client interface {
	// Find returns the resource matching the filter, or (nil, nil) when it
	// does not exist. Absence is never an error; callers decide whether it
	// is fatal or expected.
	Find(ctx context.Context, f Filter) (*Resource, error)

	// Create creates the resource described by the spec. If a resource with
	// the same idempotency key already exists it is returned as-is, without
	// diffing against the spec.
	Create(ctx context.Context, s Spec) (*Resource, error)

	// Upsert creates the resource or overwrites its definition when one with
	// the same name already exists.
	Upsert(ctx context.Context, s Spec) (*Resource, error)

	// WaitUntil polls the resource matching the filter at a fixed interval
	// until the predicate reports done or the timeout expires. On timeout it
	// returns the last observed resource together with ErrWaitTimeout.
	WaitUntil(ctx context.Context, f Filter, p Predicate, timeout time.Duration) (*Resource, error)
}
