package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

var dataPrefix = []byte("data:")

const doneSentinel = "[DONE]"

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream performs one streaming round trip. Lines arrive as server-sent
// events, content deltas go on the channel as strings, [DONE] or a clean
// EOF ends the stream with models.StreamDone. A chunk that fails to decode
// terminates the stream with an error, it is never skipped.
func (c Codec) Stream(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (<-chan models.CompletionEvent, error) {
	payload := chatRequest{
		Model:    model,
		Messages: toWireMessages(messages),
		Tools:    wrapTools(toolDefs),
		Stream:   true,
	}
	req, err := c.newRequest(ctx, conn, http.MethodPost, chatCompletionsPath, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Connection", "keep-alive")
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}

	out := make(chan models.CompletionEvent)
	go c.relayStream(res, out)
	return out, nil
}

func (c Codec) relayStream(res *http.Response, out chan<- models.CompletionEvent) {
	defer func() {
		res.Body.Close()
		close(out)
	}()
	br := bufio.NewReader(res.Body)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			done, relayErr := c.relayLine(line, out)
			if relayErr != nil {
				out <- relayErr
				return
			}
			if done {
				out <- models.StreamDone{}
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				out <- models.StreamDone{}
				return
			}
			out <- fmt.Errorf("failed to read line: %w", err)
			return
		}
	}
}

// relayLine parses one stream line, reporting whether the done sentinel was
// seen. Empty lines are skipped, everything else must be a chunk.
func (c Codec) relayLine(line []byte, out chan<- models.CompletionEvent) (bool, error) {
	token := bytes.TrimSpace(line)
	if len(token) == 0 {
		return false, nil
	}
	token = bytes.TrimSpace(bytes.TrimPrefix(token, dataPrefix))
	if string(token) == doneSentinel {
		return true, nil
	}
	if c.debug {
		ancli.Okf("openai stream chunk: %v\n", string(token))
	}

	var chunk streamChunk
	if err := json.Unmarshal(token, &chunk); err != nil {
		return false, fmt.Errorf("failed to unmarshal chunk %q: %w", string(token), err)
	}
	for _, choice := range chunk.Choices {
		if choice.Delta.Content != "" {
			out <- choice.Delta.Content
		}
	}
	return false, nil
}
