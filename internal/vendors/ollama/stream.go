package ollama

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

type streamChunk struct {
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Stream performs one streaming round trip. The body is newline-delimited
// JSON, every non-empty line must decode or the stream terminates with an
// error. A done chunk ends the stream immediately, trailing input is never
// read. Clean EOF without a done chunk also terminates with StreamDone.
func (c Codec) Stream(ctx context.Context, conn models.ProviderConnection, model string, messages []models.ChatMessage, toolDefs []models.ToolDescriptor) (<-chan models.CompletionEvent, error) {
	payload := chatRequest{
		Model:    model,
		Messages: toWireMessages(messages),
		Tools:    wrapTools(toolDefs),
		Stream:   true,
	}
	req, err := c.newRequest(ctx, conn, http.MethodPost, chatPath, payload)
	if err != nil {
		return nil, err
	}
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

// relayLine parses one NDJSON line, reporting whether the done flag was
// set. A chunk carrying both content and done emits the delta first.
func (c Codec) relayLine(line []byte, out chan<- models.CompletionEvent) (bool, error) {
	token := bytes.TrimSpace(line)
	if len(token) == 0 {
		return false, nil
	}
	if c.debug {
		ancli.Okf("ollama stream chunk: %v\n", string(token))
	}

	var chunk streamChunk
	if err := json.Unmarshal(token, &chunk); err != nil {
		return false, fmt.Errorf("failed to unmarshal chunk %q: %w", string(token), err)
	}
	if chunk.Message != nil && chunk.Message.Content != "" {
		out <- chunk.Message.Content
	}
	return chunk.Done, nil
}
