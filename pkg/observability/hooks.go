package observability

import (
	"log/slog"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/kind"
)

// LogHooks returns factory hooks that log every event on logger.
func LogHooks(logger *slog.Logger) cantype.Hooks {
	return cantype.Hooks{
		OnCreate: func(e *cantype.TypeEvent) {
			logger.Debug("type_created", "type", e.Name, "policy", e.Policy)
		},
		OnMismatch: func(e *cantype.TypeEvent) {
			logger.Info("type_mismatch",
				"type", e.Name,
				"policy", e.Policy,
				"value", kind.Format(e.Value),
			)
		},
		OnResolve: func(e *cantype.TypeEvent) {
			if e.Err != nil {
				logger.Warn("late_resolve", "error", e.Err)
				return
			}
			logger.Debug("late_resolve", "type", e.Name)
		},
	}
}

// Combine returns hooks that call each of hooks in order.
func Combine(hooks ...cantype.Hooks) cantype.Hooks {
	fanout := func(pick func(cantype.Hooks) func(*cantype.TypeEvent)) func(*cantype.TypeEvent) {
		var fns []func(*cantype.TypeEvent)
		for _, h := range hooks {
			if fn := pick(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(e *cantype.TypeEvent) {
			for _, fn := range fns {
				fn(e)
			}
		}
	}

	return cantype.Hooks{
		OnCreate:   fanout(func(h cantype.Hooks) func(*cantype.TypeEvent) { return h.OnCreate }),
		OnMismatch: fanout(func(h cantype.Hooks) func(*cantype.TypeEvent) { return h.OnMismatch }),
		OnResolve:  fanout(func(h cantype.Hooks) func(*cantype.TypeEvent) { return h.OnResolve }),
	}
}
