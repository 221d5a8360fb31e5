package streaming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// chunk mirrors the OpenAI streaming delta shape the browser client parses.
type chunk struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Delta delta `json:"delta"`
}

type delta struct {
	Content string `json:"content"`
}

// Encoder writes the line-oriented event protocol: one `data: <json>` line
// per fragment, flushed individually, closed by a single `data: [DONE]`.
type Encoder struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewEncoder prepares the response for event streaming. It fails when the
// underlying writer cannot flush per fragment.
func NewEncoder(w http.ResponseWriter) (*Encoder, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &Encoder{w: w, flusher: flusher}, nil
}

// WriteContent emits one fragment. A fragment is atomic: it is either fully
// written and flushed or not sent at all.
func (e *Encoder) WriteContent(content string) error {
	data, err := json.Marshal(chunk{Choices: []choice{{Delta: delta{Content: content}}}})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", data); err != nil {
		return err
	}
	e.flusher.Flush()
	return nil
}

// WriteDone emits the terminal marker.
func (e *Encoder) WriteDone() error {
	if _, err := fmt.Fprint(e.w, "data: [DONE]\n\n"); err != nil {
		return err
	}
	e.flusher.Flush()
	return nil
}

// Stream splits text on whitespace and emits one fragment per token, each
// with a single trailing space so naive concatenation reproduces the source
// spacing. Fragments are paced by delay and emission stops as soon as ctx is
// cancelled; an undisturbed stream always ends with the [DONE] marker.
func Stream(ctx context.Context, enc *Encoder, text string, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for i, word := range strings.Fields(text) {
		if i > 0 {
			timer.Reset(delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := enc.WriteContent(word + " "); err != nil {
			return err
		}
	}

	return enc.WriteDone()
}
