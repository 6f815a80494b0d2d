package dialogue

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/dlai/internal/vendors"
)

type sinkRecorder struct {
	mu       sync.Mutex
	events   []models.StreamEvent
	terminal chan struct{}
}

func newSinkRecorder() *sinkRecorder {
	return &sinkRecorder{terminal: make(chan struct{})}
}

func (s *sinkRecorder) sink(event models.StreamEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if event.Terminal() {
		close(s.terminal)
	}
}

func (s *sinkRecorder) wait(t *testing.T) []models.StreamEvent {
	t.Helper()
	select {
	case <-s.terminal:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a terminal event")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

func (s *sinkRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestStreamRelaysDeltasAndDone(t *testing.T) {
	mock := &vendors.Mock{Deltas: []string{"Hel", "lo"}}
	recorder := newSinkRecorder()
	streamer := NewStreamer(testEngine(t, mock), recorder.sink)

	if err := streamer.Run(nil, "hi", "req-1"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	events := recorder.wait(t)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}
	for i, want := range []string{"Hel", "lo"} {
		if events[i].Type != models.StreamEventAnswer || events[i].Delta != want {
			t.Errorf("event %d: got %+v, want answer %q", i, events[i], want)
		}
	}
	last := events[len(events)-1]
	if last.Type != models.StreamEventDone {
		t.Errorf("got final event %+v, want done", last)
	}
	for _, event := range events {
		if event.RequestID != "req-1" {
			t.Errorf("event missing request id: %+v", event)
		}
	}
}

func TestStreamRejectsEmptyInputSynchronously(t *testing.T) {
	recorder := newSinkRecorder()
	streamer := NewStreamer(testEngine(t, &vendors.Mock{}), recorder.sink)

	if err := streamer.Run(nil, "   ", "req-1"); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
	if recorder.count() != 0 {
		t.Error("rejected stream must not emit events")
	}
}

func TestStreamRequiresSelectedModel(t *testing.T) {
	recorder := newSinkRecorder()
	engine := testEngine(t, &vendors.Mock{})
	engine.store = testStore(t, "")
	streamer := NewStreamer(engine, recorder.sink)

	if err := streamer.Run(nil, "hi", "req-1"); !errors.Is(err, ErrNoModelSelected) {
		t.Fatalf("got %v, want ErrNoModelSelected", err)
	}
	if recorder.count() != 0 {
		t.Error("rejected stream must not emit events")
	}
}

func TestStreamRequestFailureEmitsErrorEvent(t *testing.T) {
	mock := &vendors.Mock{Err: errors.New("connection refused")}
	recorder := newSinkRecorder()
	streamer := NewStreamer(testEngine(t, mock), recorder.sink)

	if err := streamer.Run(nil, "hi", "req-9"); err != nil {
		t.Fatalf("Run must dispatch despite the pending failure, got %v", err)
	}

	events := recorder.wait(t)
	if len(events) != 1 {
		t.Fatalf("got %d events, want a single error: %+v", len(events), events)
	}
	if events[0].Type != models.StreamEventError || events[0].RequestID != "req-9" {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if events[0].Message == "" {
		t.Error("error event must carry a message")
	}
}

func TestStreamMidStreamFailureEmitsErrorAfterDeltas(t *testing.T) {
	mock := &vendors.Mock{
		Deltas:    []string{"partial"},
		StreamErr: errors.New("chunk decode failed"),
	}
	recorder := newSinkRecorder()
	streamer := NewStreamer(testEngine(t, mock), recorder.sink)

	if err := streamer.Run(nil, "hi", "req-2"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	events := recorder.wait(t)
	if len(events) != 2 {
		t.Fatalf("got %d events, want delta then error: %+v", len(events), events)
	}
	if events[0].Type != models.StreamEventAnswer || events[0].Delta != "partial" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Type != models.StreamEventError {
		t.Errorf("got final event %+v, want error", events[1])
	}
}
