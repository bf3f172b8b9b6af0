// Package combo is a generic autocomplete state container: it owns the
// open flag, input text, highlight and selection of a dropdown, applies
// a default transition for every input event, and consults a pluggable
// reducer that may amend or veto each proposed transition before it is
// committed. Widgets supply the reducer to bend the defaults to their
// own interaction rules.
package combo

// Trigger identifies the event that proposed a state transition
type Trigger int

const (
	TriggerInputChange Trigger = iota
	TriggerInputBlur
	TriggerInputMouseUp
	TriggerEscape
	TriggerSelectItem
	TriggerHighlightNext
	TriggerHighlightPrev
)

// State is the container's transient interaction state
type State struct {
	InputValue       string
	IsOpen           bool
	HighlightedIndex int
	SelectedIndex    int // -1 when nothing is selected
}

// Change is a proposed transition: the triggering event plus the next
// state the container computed from its default rules
type Change struct {
	Trigger Trigger
	Next    State
}

// Reducer may replace the proposed next state or veto the transition
// entirely by returning ok=false, in which case the current state is
// kept untouched.
type Reducer func(current State, change Change) (next State, ok bool)

// Container serializes state transitions for one dropdown. It is not
// safe for concurrent use; all events must arrive on one goroutine,
// which the TUI event loop guarantees.
type Container struct {
	state     State
	reducer   Reducer
	itemCount int
}

// New creates a container in the closed state, optionally pre-seeded
// with initial input text.
func New(initialInput string, reducer Reducer) *Container {
	return &Container{
		state: State{
			InputValue:    initialInput,
			SelectedIndex: -1,
		},
		reducer: reducer,
	}
}

// State returns the current interaction state
func (c *Container) State() State {
	return c.state
}

// SetItemCount tells the container how many items the menu currently
// shows, clamping the highlight into range.
func (c *Container) SetItemCount(n int) {
	c.itemCount = n
	if c.state.HighlightedIndex >= n {
		c.state.HighlightedIndex = 0
	}
	if c.state.SelectedIndex >= n {
		c.state.SelectedIndex = -1
	}
}

// ItemCount returns the current menu length
func (c *Container) ItemCount() int {
	return c.itemCount
}

// SetHighlighted moves the highlight directly to an index, as pointer
// hover does. Out-of-range indexes are ignored.
func (c *Container) SetHighlighted(idx int) {
	if idx >= 0 && idx < c.itemCount {
		c.state.HighlightedIndex = idx
	}
}

// InputChange proposes a transition for new input text: menu opens,
// highlight returns to the top, any selection is dropped.
func (c *Container) InputChange(value string) State {
	next := c.state
	next.InputValue = value
	next.IsOpen = true
	next.HighlightedIndex = 0
	next.SelectedIndex = -1
	return c.apply(TriggerInputChange, next)
}

// Blur proposes the default blur transition: the menu closes and the
// field resets.
func (c *Container) Blur() State {
	next := c.state
	next.IsOpen = false
	next.InputValue = ""
	next.HighlightedIndex = 0
	return c.apply(TriggerInputBlur, next)
}

// MouseUp proposes the default pointer-up-on-input transition: the
// field resets and any selection is dropped.
func (c *Container) MouseUp() State {
	next := c.state
	next.InputValue = ""
	next.SelectedIndex = -1
	return c.apply(TriggerInputMouseUp, next)
}

// Escape proposes the default escape transition: clear everything and
// close the menu.
func (c *Container) Escape() State {
	next := c.state
	next.InputValue = ""
	next.IsOpen = false
	next.HighlightedIndex = 0
	next.SelectedIndex = -1
	return c.apply(TriggerEscape, next)
}

// SelectHighlighted proposes selecting the highlighted item: the
// selection latches, the menu closes and the field resets.
func (c *Container) SelectHighlighted() State {
	next := c.state
	next.SelectedIndex = next.HighlightedIndex
	next.IsOpen = false
	next.InputValue = ""
	return c.apply(TriggerSelectItem, next)
}

// HighlightNext moves the highlight down one item, wrapping to the top
func (c *Container) HighlightNext() State {
	next := c.state
	if c.itemCount > 0 {
		next.HighlightedIndex = (next.HighlightedIndex + 1) % c.itemCount
		next.IsOpen = true
	}
	return c.apply(TriggerHighlightNext, next)
}

// HighlightPrev moves the highlight up one item, wrapping to the bottom
func (c *Container) HighlightPrev() State {
	next := c.state
	if c.itemCount > 0 {
		next.HighlightedIndex = (next.HighlightedIndex - 1 + c.itemCount) % c.itemCount
		next.IsOpen = true
	}
	return c.apply(TriggerHighlightPrev, next)
}

// apply runs the proposed transition through the reducer and commits
// the outcome. A veto keeps the current state.
func (c *Container) apply(trigger Trigger, next State) State {
	if c.reducer != nil {
		amended, ok := c.reducer(c.state, Change{Trigger: trigger, Next: next})
		if !ok {
			return c.state
		}
		next = amended
	}
	if next.HighlightedIndex < 0 || next.HighlightedIndex >= c.itemCount {
		next.HighlightedIndex = 0
	}
	if next.SelectedIndex >= c.itemCount {
		next.SelectedIndex = -1
	}
	c.state = next
	return c.state
}
