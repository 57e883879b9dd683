package flow

import (
	"context"
	"fmt"

	"github.com/example/giftdesk/internal/ports/secondary"
	"github.com/example/giftdesk/internal/result"
)

// Audit event kind written by the logging middleware.
const auditKindActionDispatched = "action_dispatched"

// Rule is one validation check applied to an action before the reducer
// runs. A nil return passes; an error return rejects the action with
// that reason.
type Rule[S, A any] func(action A, state S) error

// Logging returns a side-effect-only middleware that records every
// dispatched action to the audit trail. It always passes; an audit
// write failure must never block the action pipeline.
func Logging[S, A any](slice string, audit secondary.AuditWriter) Middleware[S, A] {
	return Middleware[S, A]{
		Name: "logging",
		Check: func(action A, _ S) result.Result[bool] {
			if audit != nil {
				_ = audit.LogEvent(context.Background(), "flow", slice,
					auditKindActionDispatched, fmt.Sprintf("%T", action), false)
			}
			return result.Ok(true)
		},
	}
}

// Validation returns a middleware that runs rules in order and rejects
// the action on the first rule failure.
func Validation[S, A any](rules ...Rule[S, A]) Middleware[S, A] {
	return Middleware[S, A]{
		Name: "validation",
		Check: func(action A, state S) result.Result[bool] {
			for _, rule := range rules {
				if err := rule(action, state); err != nil {
					return result.Err[bool](err)
				}
			}
			return result.Ok(true)
		},
	}
}
