// Package recorder connects the dispatch pipeline to an ActionStore: every
// outer action flowing through a node is appended to the store as a
// serialized record, and a recorded log can be replayed against a fresh
// tree.
package recorder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/action"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Recorder persists every action dispatched on a node (or its descendants)
// to an ActionStore.
type Recorder struct {
	dispose func()
	logger  *slog.Logger
	ctx     context.Context
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used for recorder events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithContext sets the base context passed to store appends. Defaults to
// context.Background.
func WithContext(ctx context.Context) Option {
	return func(r *Recorder) {
		r.ctx = ctx
	}
}

// Attach registers a recording middleware on node. Serialization and append
// failures propagate through the pipeline to the action's caller; a failed
// append therefore also fails the action, keeping the log and the tree in
// step.
func Attach(node ports.Node, store ports.ActionStore, opts ...Option) *Recorder {
	r := &Recorder{
		logger: logging.NewNop(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.dispose = node.AddMiddleware(func(call *domain.RawActionCall, next domain.Next) (any, error) {
		serialized, err := action.SerializeCall(node, call)
		if err != nil {
			return nil, err
		}
		if err := store.Append(r.ctx, serialized); err != nil {
			return nil, fmt.Errorf("failed to record action %q: %w", call.Name, err)
		}
		r.logger.Debug("action recorded", "action", serialized.Name, "path", serialized.Path)
		return next(call)
	})

	return r
}

// Stop removes the recording middleware. Safe to call more than once.
func (r *Recorder) Stop() {
	if r.dispose != nil {
		r.dispose()
	}
}

// Replay applies every call in the store to node, in append order. It
// returns the number of calls applied; the first failure stops the replay.
func Replay(ctx context.Context, node ports.Node, store ports.ActionStore) (int, error) {
	calls, err := store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recorded actions: %w", err)
	}

	for i, call := range calls {
		if _, err := action.Apply(node, call); err != nil {
			return i, fmt.Errorf("replay stopped at call %d (%s): %w", i, call.Name, err)
		}
	}
	return len(calls), nil
}
