package fiber

import (
	"errors"
	"fmt"
)

// Binding-topology errors. Any of these surfacing mid-run indicates a
// kinetics or commit bug, not a recoverable condition.
var (
	ErrAlreadyBound  = errors.New("fiber: site is already bound")
	ErrNotBound      = errors.New("fiber: site is not bound")
	ErrSelfBind      = errors.New("fiber: site cannot bind itself")
	ErrNonReciprocal = errors.New("fiber: bound site has a non-reciprocal partner")
	ErrInvalidSite   = errors.New("fiber: site id out of arena range")
)

// BindingStateError wraps a topology error with the identity of the
// offending site(s) so the stepper can report it with context.
type BindingStateError struct {
	Op      string
	Site    SiteID
	Partner SiteID
	Err     error
}

func (e *BindingStateError) Error() string {
	if e.Partner == NoSite {
		return fmt.Sprintf("%s site %d: %s", e.Op, e.Site, e.Err)
	}
	return fmt.Sprintf("%s site %d (partner %d): %s", e.Op, e.Site, e.Partner, e.Err)
}

func (e *BindingStateError) Unwrap() error { return e.Err }
