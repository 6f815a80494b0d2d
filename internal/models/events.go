package models

// StreamEventType discriminates the StreamEvent union.
type StreamEventType string

const (
	StreamEventAnswer StreamEventType = "answer"
	StreamEventDone   StreamEventType = "done"
	StreamEventError  StreamEventType = "error"
)

// StreamEvent is one incremental result of a streaming request, shaped for
// the UI. Done and Error are terminal, exactly one of them ends every
// initiated stream.
type StreamEvent struct {
	Type      StreamEventType `json:"type"`
	RequestID string          `json:"requestId"`
	Delta     string          `json:"delta,omitempty"`
	Message   string          `json:"message,omitempty"`
}

func AnswerEvent(requestID, delta string) StreamEvent {
	return StreamEvent{Type: StreamEventAnswer, RequestID: requestID, Delta: delta}
}

func DoneEvent(requestID string) StreamEvent {
	return StreamEvent{Type: StreamEventDone, RequestID: requestID}
}

func ErrorEvent(requestID, message string) StreamEvent {
	return StreamEvent{Type: StreamEventError, RequestID: requestID, Message: message}
}

func (e StreamEvent) Terminal() bool {
	return e.Type == StreamEventDone || e.Type == StreamEventError
}

// CompletionEvent is what vendor stream codecs put on their channel: a
// string content delta, an error, or StreamDone. Errors and StreamDone are
// terminal, the channel closes after either.
type CompletionEvent any

// StreamDone marks the clean end of a provider stream.
type StreamDone struct{}
