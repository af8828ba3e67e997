package registry

// AccessRule is a single ingress rule on a security boundary.
type AccessRule struct {
	Protocol string
	Port     int
	// Source is a CIDR range ("0.0.0.0/0") or empty when SourceBoundaryID
	// is set on a grant.
	Source string
}

// BoundarySpec describes a named security boundary scoped to a network
// partition. Name plus PartitionID is the idempotency key.
type BoundarySpec struct {
	Name        string
	PartitionID string
	Description string
	Rules       []AccessRule
}

func (s BoundarySpec) SpecKind() Kind { return KindSecurityBoundary }
func (s BoundarySpec) SpecName() string { return s.Name }

// GrantSpec describes a directed access edge: the boundary identified by
// SourceBoundaryID may reach BoundaryName on Port. Re-issuing an identical
// grant is swallowed by the provider, never an error.
type GrantSpec struct {
	BoundaryName     string
	PartitionID      string
	Protocol         string
	Port             int
	SourceBoundaryID string
}

func (s GrantSpec) SpecKind() Kind { return KindAccessGrant }
func (s GrantSpec) SpecName() string { return s.BoundaryName }

// BucketSpec describes a durable storage location for artifacts.
type BucketSpec struct {
	Name string
}

func (s BucketSpec) SpecKind() Kind { return KindStorageBucket }
func (s BucketSpec) SpecName() string { return s.Name }

// ObjectSpec describes a stored artifact payload.
type ObjectSpec struct {
	Bucket string
	Key    string
	Body   []byte
}

func (s ObjectSpec) SpecKind() Kind { return KindStorageObject }
func (s ObjectSpec) SpecName() string { return s.Key }

// ApplicationSpec describes the application registration on the hosting
// platform.
type ApplicationSpec struct {
	Name        string
	Description string
}

func (s ApplicationSpec) SpecKind() Kind { return KindApplication }
func (s ApplicationSpec) SpecName() string { return s.Name }

// ReleaseSpec registers an uploaded artifact as a release candidate.
// VersionLabel is timestamp-based and unique per run; releases are
// append-only and never mutated.
type ReleaseSpec struct {
	ApplicationName string
	VersionLabel    string
	StorageBucket   string
	StorageKey      string
	Description     string
}

func (s ReleaseSpec) SpecKind() Kind { return KindRelease }
func (s ReleaseSpec) SpecName() string { return s.VersionLabel }

// EnvironmentSpec triggers a hosting environment to adopt a release version.
// Upserting it updates the running environment; this pipeline never creates
// environments (a deliberate manual gate).
type EnvironmentSpec struct {
	Name            string
	ApplicationName string
	VersionLabel    string
}

func (s EnvironmentSpec) SpecKind() Kind { return KindEnvironment }
func (s EnvironmentSpec) SpecName() string { return s.Name }

// Comparator relates an observed metric value to a threshold.
type Comparator string

const (
	ComparatorGreaterThan        Comparator = ">"
	ComparatorGreaterThanOrEqual Comparator = ">="
	ComparatorLessThan           Comparator = "<"
	ComparatorLessThanOrEqual    Comparator = "<="
)

// AlertRuleSpec describes a metric alarm. Upsert by name: re-creation with
// the same name overwrites the definition.
type AlertRuleSpec struct {
	Name             string
	Namespace        string
	Metric           string
	Dimensions       map[string]string
	Statistic        string
	Comparator       Comparator
	Threshold        float64
	EvaluationWindow int // seconds per evaluation period
	Periods          int // number of periods before the rule fires
	ChannelID        string
	Description      string
}

func (s AlertRuleSpec) SpecKind() Kind { return KindAlertRule }
func (s AlertRuleSpec) SpecName() string { return s.Name }

// DashboardSpec describes a named dashboard; Body is the provider-ready
// serialized panel layout. Upsert by name.
type DashboardSpec struct {
	Name string
	Body string
}

func (s DashboardSpec) SpecKind() Kind { return KindDashboard }
func (s DashboardSpec) SpecName() string { return s.Name }

// ChannelSpec describes a notification channel plus its subscribers.
// The channel is created once; duplicate subscription attempts are
// tolerated, not rejected.
type ChannelSpec struct {
	Name        string
	Subscribers []string
}

func (s ChannelSpec) SpecKind() Kind { return KindNotificationChannel }
func (s ChannelSpec) SpecName() string { return s.Name }
