package vendors

import (
	"context"

	"github.com/baalimago/dlai/internal/models"
)

// Mock is a Codec that replies with a fixed script, for tests.
type Mock struct {
	// Turns are returned by Chat in order, the last one repeats.
	Turns []models.AssistantTurn
	// Deltas are streamed by Stream before a clean done.
	Deltas []string
	// StreamErr, when set, ends the stream with an error after the deltas
	// instead of a done.
	StreamErr error
	// Models are returned by ListModels.
	Models []models.Model
	// Err, when set, fails every operation.
	Err error

	// Calls counts Chat invocations.
	Calls int
	// Sent records the message slice of each Chat invocation.
	Sent [][]models.ChatMessage
}

func (m *Mock) Chat(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (models.AssistantTurn, error) {
	if m.Err != nil {
		return models.AssistantTurn{}, m.Err
	}
	snapshot := make([]models.ChatMessage, len(messages))
	copy(snapshot, messages)
	m.Sent = append(m.Sent, snapshot)
	if len(m.Turns) == 0 {
		m.Calls++
		return models.AssistantTurn{}, nil
	}
	idx := m.Calls
	if idx >= len(m.Turns) {
		idx = len(m.Turns) - 1
	}
	m.Calls++
	return m.Turns[idx], nil
}

func (m *Mock) Stream(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (<-chan models.CompletionEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ch := make(chan models.CompletionEvent, len(m.Deltas)+1)
	go func() {
		defer close(ch)
		for _, d := range m.Deltas {
			ch <- d
		}
		if m.StreamErr != nil {
			ch <- m.StreamErr
			return
		}
		ch <- models.StreamDone{}
	}()
	return ch, nil
}

func (m *Mock) ListModels(ctx context.Context, conn models.ProviderConnection) ([]models.Model, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Models, nil
}
