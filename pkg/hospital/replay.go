package hospital

import (
	"context"
	"time"
)

const (
	// DefaultCharDelay paces the reply text
	DefaultCharDelay = 50 * time.Millisecond

	// DefaultItemDelay paces the recommendations
	DefaultItemDelay = 500 * time.Millisecond
)

// StreamHandlers receive a reply as it is replayed. Nil handlers are skipped.
type StreamHandlers struct {
	OnStart          func()
	OnText           func(chunk string)
	OnRecommendation func(h *Hospital)
	OnEnd            func(msg *Message)
	OnError          func(err error)
}

func (h *StreamHandlers) start() {
	if h != nil && h.OnStart != nil {
		h.OnStart()
	}
}

func (h *StreamHandlers) text(chunk string) {
	if h != nil && h.OnText != nil {
		h.OnText(chunk)
	}
}

func (h *StreamHandlers) recommendation(hospital *Hospital) {
	if h != nil && h.OnRecommendation != nil {
		h.OnRecommendation(hospital)
	}
}

func (h *StreamHandlers) end(msg *Message) {
	if h != nil && h.OnEnd != nil {
		h.OnEnd(msg)
	}
}

func (h *StreamHandlers) fail(err error) {
	if h != nil && h.OnError != nil {
		h.OnError(err)
	}
}

// Replayer drip-feeds a complete message: the text one rune at a time, then
// each recommendation
type Replayer struct {
	CharDelay time.Duration
	ItemDelay time.Duration
}

// NewReplayer returns a Replayer with the default pacing
func NewReplayer() *Replayer {
	return &Replayer{
		CharDelay: DefaultCharDelay,
		ItemDelay: DefaultItemDelay,
	}
}

// Replay delivers msg through handlers: OnStart once, OnText per rune,
// OnRecommendation per hospital, OnEnd last. If ctx ends first OnError
// receives ctx.Err() and nothing else is delivered.
func (r *Replayer) Replay(ctx context.Context, msg *Message, handlers *StreamHandlers) error {
	handlers.start()

	first := true
	for _, ch := range msg.Content {
		if !first {
			if err := r.wait(ctx, r.CharDelay); err != nil {
				handlers.fail(err)
				return err
			}
		}
		first = false
		handlers.text(string(ch))
	}

	for _, h := range msg.Recommendations {
		if err := r.wait(ctx, r.ItemDelay); err != nil {
			handlers.fail(err)
			return err
		}
		handlers.recommendation(h)
	}

	handlers.end(msg)
	return nil
}

func (r *Replayer) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
