package observability

import (
	"log/slog"

	"github.com/aretw0/canopy"
)

// SlogHook returns a tick hook that logs every recorded tick at debug level.
func SlogHook(log *slog.Logger) func(canopy.TickEvent) {
	return func(ev canopy.TickEvent) {
		log.Debug("tick",
			"node", ev.Node,
			"id", ev.ID,
			"result", ev.Result.String(),
			"duration", ev.Duration,
		)
	}
}

// Combine fans each tick event out to every hook, in order.
func Combine(hooks ...func(canopy.TickEvent)) func(canopy.TickEvent) {
	return func(ev canopy.TickEvent) {
		for _, hook := range hooks {
			hook(ev)
		}
	}
}
