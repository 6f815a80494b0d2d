// This file contains test helpers intended to be used by the vendor codec
// implementations when asserting stream semantics.
package models

import (
	"testing"
	"time"
)

// CollectedStream is the drained form of a codec stream channel.
type CollectedStream struct {
	Deltas   []string
	Done     bool
	Err      error
	Trailing int
}

// Concatenated joins the content deltas in arrival order.
func (c CollectedStream) Concatenated() string {
	out := ""
	for _, d := range c.Deltas {
		out += d
	}
	return out
}

// DrainStream_Test consumes a codec stream channel until it closes,
// asserting that exactly one terminal element arrives and that nothing
// follows it. Trailing counts elements received after the terminal, which
// must stay zero for a conforming codec.
func DrainStream_Test(t *testing.T, events <-chan CompletionEvent) CollectedStream {
	t.Helper()
	var got CollectedStream
	terminal := false
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				if !terminal {
					t.Fatal("stream channel closed without a terminal element")
				}
				return got
			}
			if terminal {
				got.Trailing++
				continue
			}
			switch e := ev.(type) {
			case string:
				got.Deltas = append(got.Deltas, e)
			case error:
				got.Err = e
				terminal = true
			case StreamDone:
				got.Done = true
				terminal = true
			default:
				t.Fatalf("unexpected stream element type: %T", ev)
			}
		case <-timeout:
			t.Fatal("timed out waiting for stream elements")
		}
	}
}
