package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/mailadapter/internal/pkg/stacktrace"
)

func callHandlerWithRecover(ctx context.Context, kind string, fn func() error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, stacktrace.Attr())
			err = fmt.Errorf("messaging: panic in %s handler: %v", kind, rvr)
		}
	}()

	return fn()
}

// dispatcher runs a handler for each delivered message, bounded by the
// configured concurrency, and applies auto-ack.
type dispatcher struct {
	kind    string
	handler Handler
	autoAck bool
	sem     chan struct{}
	wg      sync.WaitGroup
}

func newDispatcher(kind string, handler Handler, co consumeOptions) *dispatcher {
	return &dispatcher{
		kind:    kind,
		handler: handler,
		autoAck: co.autoAck,
		sem:     make(chan struct{}, co.concurrency),
	}
}

// handle runs the handler on the calling goroutine.
func (d *dispatcher) handle(ctx context.Context, msg *Message) {
	herr := callHandlerWithRecover(ctx, d.kind, func() error {
		return d.handler(ctx, msg)
	})
	if !d.autoAck {
		return
	}

	respond, action := msg.Ack, "ack"
	if herr != nil {
		respond, action = msg.Nack, "nack"
	}
	if err := respond(ctx); err != nil {
		slog.WarnContext(ctx, "failed to "+action+" message", "kind", d.kind, "topic", msg.Topic, "error", err)
	}
}

// dispatch runs the handler on a new goroutine once a slot is free. It returns
// false when ctx is done before a slot frees up.
func (d *dispatcher) dispatch(ctx context.Context, msg *Message) bool {
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return false
	}

	d.wg.Go(func() {
		defer func() { <-d.sem }()
		d.handle(ctx, msg)
	})
	return true
}

func (d *dispatcher) wait() {
	d.wg.Wait()
}
