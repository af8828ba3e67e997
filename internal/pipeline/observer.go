package pipeline

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured events while the pipeline runs.
type Observer interface {
	// Printf logs a free-form line.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured pipeline event.
type Event struct {
	Type      EventType
	Phase     string
	Resource  string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of pipeline event.
type EventType string

const (
	// EventPhaseStarted indicates a pipeline phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a pipeline phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a pipeline phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventResourceCreated indicates a remote resource was created.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates the resource was already present and the
	// idempotent create was a no-op.
	EventResourceExists EventType = "resource.exists"
	// EventResourceUpdated indicates an upsert overwrote an existing
	// resource definition.
	EventResourceUpdated EventType = "resource.updated"

	// EventWarning indicates a non-fatal finding the operator should read.
	EventWarning EventType = "warning"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

func formatEvent(event Event) string {
	parts := []string{string(event.Type)}
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)
	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}
	return strings.Join(parts, " ")
}

// LogResourceCreated logs a successful resource creation.
func LogResourceCreated(observer Observer, phase, resourceType, name, id string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": id},
	})
}

// LogResourceExists logs that a resource was already present.
func LogResourceExists(observer Observer, phase, resourceType, name, id string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": id},
	})
}

// LogResourceUpdated logs an upsert that overwrote an existing definition.
func LogResourceUpdated(observer Observer, phase, resourceType, name string) {
	observer.Event(Event{
		Type:     EventResourceUpdated,
		Phase:    phase,
		Resource: name,
		Message:  fmt.Sprintf("%s up to date", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}
