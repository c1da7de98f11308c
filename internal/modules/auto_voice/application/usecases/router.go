package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/multierr"

	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/application/ports"
	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
)

// Handler names used in logs and metrics.
const (
	HandlerJoin  = "join"
	HandlerLeave = "leave"
)

// MembershipHandlerFunc handles one side of a membership change.
type MembershipHandlerFunc func(ctx context.Context, state domain.MembershipState) error

// HandlerError attributes a failure to the handler that produced it.
type HandlerError struct {
	Handler string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler: %v", e.Handler, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// MembershipRouter fans a membership change out to the join and leave
// handlers.
//
// The join handler always receives the new state; the leave handler receives
// the previous state when there is one. Both run to completion independently
// and concurrently. Their failures, panics included, are logged and then
// discarded: a membership change never fails as a whole, and one handler's
// outcome never affects the other's.
type MembershipRouter struct {
	onJoin   MembershipHandlerFunc
	onLeave  MembershipHandlerFunc
	recorder ports.LifecycleRecorder
}

// NewMembershipRouter creates a new MembershipRouter.
func NewMembershipRouter(
	onJoin MembershipHandlerFunc,
	onLeave MembershipHandlerFunc,
	recorder ports.LifecycleRecorder,
) *MembershipRouter {
	if recorder == nil {
		recorder = ports.NopLifecycleRecorder{}
	}
	return &MembershipRouter{
		onJoin:   onJoin,
		onLeave:  onLeave,
		recorder: recorder,
	}
}

// Route dispatches a membership change and logs every handler failure.
func (r *MembershipRouter) Route(ctx context.Context, change domain.MembershipChange) {
	err := r.dispatch(ctx, change)

	for _, err := range multierr.Errors(err) {
		handler := "unknown"
		var handlerErr *HandlerError
		if errors.As(err, &handlerErr) {
			handler = handlerErr.Handler
		}
		slog.Error("failed to handle membership change",
			"handler", handler,
			"guild", change.After.GuildID,
			"user", change.After.UserID,
			"error", err,
		)
	}
}

// dispatch runs the handlers and returns their combined failures.
func (r *MembershipRouter) dispatch(ctx context.Context, change domain.MembershipChange) error {
	var joinErr, leaveErr error
	var wg conc.WaitGroup

	wg.Go(func() {
		joinErr = r.invoke(ctx, HandlerJoin, r.onJoin, change.After)
	})

	if change.Before != nil {
		before := *change.Before
		wg.Go(func() {
			leaveErr = r.invoke(ctx, HandlerLeave, r.onLeave, before)
		})
	}

	wg.Wait()

	return multierr.Combine(joinErr, leaveErr)
}

func (r *MembershipRouter) invoke(
	ctx context.Context,
	name string,
	handler MembershipHandlerFunc,
	state domain.MembershipState,
) error {
	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = handler(ctx, state)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}

	if err == nil {
		return nil
	}

	r.recorder.HandlerFailed(name)
	return &HandlerError{Handler: name, Err: err}
}
