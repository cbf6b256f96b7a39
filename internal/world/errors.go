package world

import (
	"fmt"

	"github.com/kwhitlock/fiberlab/internal/fiber"
)

// ConfigurationError reports an invalid world-construction option. Raised
// before any state is built; construction never clamps bad values silently.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("world: invalid option %s: %s", e.Option, e.Reason)
}

// StabilityWarning flags a numerical-stability hazard observed during a
// step: a transition rate too fast for the timestep, or a non-finite force.
// The step completes on the clamped value; the warning rides the StepReport
// so the caller can reduce dt.
type StabilityWarning struct {
	Site      fiber.SiteID
	Rate      float64
	Dt        float64
	NonFinite bool
}

func (w *StabilityWarning) Error() string {
	if w.NonFinite {
		return fmt.Sprintf("world: non-finite force at site %d, clamped to zero", w.Site)
	}
	return fmt.Sprintf("world: rate·dt = %.3g at site %d approaches 1; reduce the timestep", w.Rate*w.Dt, w.Site)
}
