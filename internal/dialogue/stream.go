package dialogue

import (
	"context"
	"slices"

	"github.com/baalimago/dlai/internal/models"
)

// EventSink receives stream events as they are produced. It is called from
// the streaming worker goroutine, implementations synchronize themselves.
type EventSink func(models.StreamEvent)

// Streamer runs single round-trip streaming turns. Tool calls are not
// executed on this path, streamed text is the whole result.
type Streamer struct {
	engine *Engine
	sink   EventSink
}

func NewStreamer(engine *Engine, sink EventSink) *Streamer {
	return &Streamer{engine: engine, sink: sink}
}

// Run validates synchronously and returns once the worker is dispatched.
// Everything after that arrives through the sink tagged with requestID,
// ending with exactly one Done or Error event. There is no cancellation,
// a started stream runs to completion or failure within the client timeout.
func (s *Streamer) Run(history []models.ChatMessage, input, requestID string) error {
	trimmed, tgt, err := s.engine.preflight(input)
	if err != nil {
		return err
	}
	conversation := append(slices.Clone(history), models.NewUserMessage(trimmed))
	toolDefs := s.engine.registry.Descriptors()

	go s.relay(tgt, conversation, toolDefs, requestID)
	return nil
}

// relay owns the provider round trip. It runs on a fresh context, the
// stream outlives the caller's request and is bounded by the HTTP client
// timeout instead.
func (s *Streamer) relay(tgt target, conversation []models.ChatMessage, toolDefs []models.ToolDescriptor, requestID string) {
	events, err := tgt.codec.Stream(context.Background(), tgt.conn, tgt.model, conversation, toolDefs)
	if err != nil {
		s.sink(models.ErrorEvent(requestID, err.Error()))
		return
	}
	for event := range events {
		switch e := event.(type) {
		case string:
			s.sink(models.AnswerEvent(requestID, e))
		case models.StreamDone:
			s.sink(models.DoneEvent(requestID))
			return
		case error:
			s.sink(models.ErrorEvent(requestID, e.Error()))
			return
		}
	}
	// Codecs end every stream with a terminal element. If one did not,
	// report instead of leaving the listener stalled.
	s.sink(models.ErrorEvent(requestID, "stream ended without completion"))
}
