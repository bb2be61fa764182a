package wizard

import (
	"fmt"

	"github.com/stitchfold/admin-gateway/internal/draft"
	pkgerrors "github.com/stitchfold/admin-gateway/pkg/errors"
)

// Controller tracks the active step and decides which transitions are
// allowed. Validation failures block the transition; they never panic and
// the controller stays usable.
type Controller struct {
	current Step
}

// NewController starts a wizard on the first step.
func NewController() *Controller {
	return &Controller{current: stepOrder[0]}
}

// NewControllerAt resumes a wizard on a stored step.
func NewControllerAt(step Step) (*Controller, error) {
	if !step.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid step %q", step))
	}
	return &Controller{current: step}, nil
}

// Current returns the active step.
func (c *Controller) Current() Step {
	return c.current
}

// Next advances one step when the current step validates. On the last step
// it stays put without error; submission is an action, not a transition.
func (c *Controller) Next(d *draft.ProductDraft) error {
	idx := indexOf(c.current)
	if idx >= len(stepOrder)-1 {
		return nil
	}
	if msg := Validate(c.current, d); msg != "" {
		return pkgerrors.New(pkgerrors.CodeValidation, msg).
			WithDetails(map[string]any{"step": c.current.String()})
	}
	c.current = stepOrder[idx+1]
	return nil
}

// Previous moves one step back without validating. On the first step it
// stays put.
func (c *Controller) Previous() {
	idx := indexOf(c.current)
	if idx > 0 {
		c.current = stepOrder[idx-1]
	}
}

// JumpTo moves directly to target. Backward jumps are always allowed;
// forward jumps require every step before target to validate, and the
// first failing step is reported.
func (c *Controller) JumpTo(target Step, d *draft.ProductDraft) error {
	targetIdx := indexOf(target)
	if targetIdx < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid step %q", target))
	}

	currentIdx := indexOf(c.current)
	if targetIdx <= currentIdx {
		c.current = target
		return nil
	}

	for i := 0; i < targetIdx; i++ {
		if msg := Validate(stepOrder[i], d); msg != "" {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("Please complete %q section first", stepOrder[i].Label())).
				WithDetails(map[string]any{
					"step":  stepOrder[i].String(),
					"error": msg,
				})
		}
	}
	c.current = target
	return nil
}
