package telemetry

// Event is a structured progress record for a streaming consumer,
// e.g. a UI relaying analysis progress. Emitting events is advisory
// only; pipeline correctness never depends on a sink being attached.
type Event struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventSink receives progress events. Implementations must not block
// for long; the pipeline calls Emit synchronously.
type EventSink interface {
	Emit(event Event)
}

// EventFunc adapts a function to the EventSink interface.
type EventFunc func(event Event)

// Emit calls the wrapped function.
func (f EventFunc) Emit(event Event) { f(event) }

// NopSink discards all events.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(Event) {}

// Emit sends an event to sink if it is non-nil.
func Emit(sink EventSink, eventType, message string, data map[string]any) {
	if sink == nil {
		return
	}
	sink.Emit(Event{Type: eventType, Message: message, Data: data})
}
