package registry

// HealthState is the finite release/environment state machine:
// Pending -> InProgress -> Healthy | Degraded | Failed.
type HealthState string

const (
	HealthPending    HealthState = "Pending"
	HealthInProgress HealthState = "InProgress"
	HealthHealthy    HealthState = "Healthy"
	HealthDegraded   HealthState = "Degraded"
	HealthFailed     HealthState = "Failed"
)

// Terminal reports whether the state ends a polling wait.
func (s HealthState) Terminal() bool {
	switch s {
	case HealthHealthy, HealthDegraded, HealthFailed:
		return true
	}
	return false
}

// HealthOf maps a resource's health attribute to a HealthState. Unknown
// values are reported verbatim as non-terminal InProgress so the wait keeps
// observing rather than guessing.
func HealthOf(r *Resource) HealthState {
	switch r.Attr(AttrHealth) {
	case "Green", "Ok", string(HealthHealthy):
		return HealthHealthy
	case "Yellow", "Warning", string(HealthDegraded):
		return HealthDegraded
	case "Red", "Severe", string(HealthFailed):
		return HealthFailed
	case "", "Grey", string(HealthPending):
		return HealthPending
	default:
		return HealthInProgress
	}
}
