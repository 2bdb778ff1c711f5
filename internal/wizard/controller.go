package wizard

import "context"

// Submitter performs the single network call that ends a wizard flow.
type Submitter interface {
	Submit(ctx context.Context, values map[string]Value) Outcome
}

// Controller owns the current step, drives navigation, and gates terminal
// submission behind full-step validation. It is UI-agnostic: focus and
// validation reporting are delegated to callbacks so a terminal front end and
// a browser front end can both drive it.
type Controller struct {
	reg    *Registry
	client Submitter

	values     map[string]Value
	current    int
	submitting bool

	// focus is invoked with the first field of the destination step after
	// every successful transition, for accessibility.
	focus func(FieldSpec)
	// report surfaces a failing control's validation message.
	report func(FieldSpec, string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithFocus sets the focus callback.
func WithFocus(fn func(FieldSpec)) Option {
	return func(c *Controller) { c.focus = fn }
}

// WithReport sets the validation-report callback.
func WithReport(fn func(FieldSpec, string)) Option {
	return func(c *Controller) { c.report = fn }
}

// NewController builds a controller positioned at step 0 with empty values.
func NewController(reg *Registry, client Submitter, opts ...Option) *Controller {
	c := &Controller{
		reg:    reg,
		client: client,
		values: make(map[string]Value),
		focus:  func(FieldSpec) {},
		report: func(FieldSpec, string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the current step index, always in [0, step count).
func (c *Controller) Current() int { return c.current }

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool { return c.submitting }

// Set records a field value. Unknown names are stored but never validated;
// the registry decides what matters.
func (c *Controller) Set(name string, v Value) {
	c.values[name] = v
}

// SetText is a convenience for single-valued text fields.
func (c *Controller) SetText(name, text string) {
	c.Set(name, Value{Strings: []string{text}})
}

// Value returns the recorded value for a field.
func (c *Controller) Value(name string) Value {
	return c.values[name]
}

// ValidateStep checks every field owned by the step about to be left. The
// first failing control is reported and focused, and validation stops there
// so the user deals with one problem at a time. A step with no required,
// non-empty-invalid fields validates true.
func (c *Controller) ValidateStep(stepIndex int) bool {
	for _, f := range c.reg.FieldsForStep(stepIndex) {
		if ferr := f.Check(c.values[f.Name]); ferr != nil {
			c.report(ferr.Field, ferr.Message)
			c.focus(ferr.Field)
			return false
		}
	}
	return true
}

// Next advances to the following step if the current one validates. It
// reports whether the step changed.
func (c *Controller) Next() bool {
	if c.submitting || !c.ValidateStep(c.current) {
		return false
	}
	if c.current >= len(c.reg.Steps)-1 {
		return false
	}
	c.current++
	c.focusStep(c.current)
	return true
}

// Back moves to the previous step unconditionally; no validation is required
// going backward. At step 0 it is a no-op.
func (c *Controller) Back() bool {
	if c.submitting || c.current == 0 {
		return false
	}
	c.current--
	c.focusStep(c.current)
	return true
}

// Submit is only meaningful on the last step. If the final step validates,
// the submission client is invoked exactly once and the controller lands in
// one of two terminal outcomes: on success the form resets to step 0 with
// empty values; on failure every value is preserved so the user can correct
// and resubmit.
func (c *Controller) Submit(ctx context.Context) Outcome {
	last := len(c.reg.Steps) - 1
	if c.current != last || c.submitting {
		return nil
	}
	if !c.ValidateStep(last) {
		return nil
	}

	c.submitting = true
	outcome := c.client.Submit(ctx, c.snapshot())
	c.submitting = false

	switch outcome.(type) {
	case Accepted:
		c.reset()
	case Rejected:
		c.focusStep(c.current)
	}
	return outcome
}

// snapshot copies the value map so the client can serialize it without
// racing later edits.
func (c *Controller) snapshot() map[string]Value {
	out := make(map[string]Value, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

func (c *Controller) reset() {
	c.values = make(map[string]Value)
	c.current = 0
	c.focusStep(0)
}

func (c *Controller) focusStep(stepIndex int) {
	fields := c.reg.FieldsForStep(stepIndex)
	if len(fields) > 0 {
		c.focus(fields[0])
	}
}
