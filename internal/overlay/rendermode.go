package overlay

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection is returned for a direction outside the four known
// values. It signals a programming defect and should stop the frame loop.
var ErrInvalidDirection = errors.New("overlay: invalid direction")

// Direction is an edge-triggered mode-cycling command.
type Direction int

const (
	DirectionUp    Direction = iota // previous render mode
	DirectionDown                   // next render mode
	DirectionLeft                   // previous sub-value
	DirectionRight                  // next sub-value

	directionCount
)

func (d Direction) valid() bool {
	return d >= 0 && d < directionCount
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MatchPolicy decides which zones a render mode lets through.
type MatchPolicy int

const (
	MatchAll      MatchPolicy = iota // every zone
	MatchSelected                    // only the zone named by the sub-value
	MatchNone                        // no zone
)

// Default render mode names.
const (
	ModeAll  = "All"
	ModeZone = "Zone"
	ModeNone = "None"
)

// RenderMode is one top-level filter with its selectable sub-values.
type RenderMode struct {
	Name   string
	Policy MatchPolicy
	Values []string
}

// DefaultModes returns All, Zone and None. Zone starts empty and is filled
// with the known zone names during Initialize.
func DefaultModes() []RenderMode {
	return []RenderMode{
		{Name: ModeAll, Policy: MatchAll, Values: []string{ModeAll}},
		{Name: ModeZone, Policy: MatchSelected},
		{Name: ModeNone, Policy: MatchNone, Values: []string{ModeNone}},
	}
}

// Cycler is the (mode, sub-index) selector driven by direction events.
type Cycler struct {
	modes  []RenderMode
	mode   int
	sub    int
	report Reporter
}

// NewCycler starts at mode 0, sub-index 0. report may be nil.
func NewCycler(modes []RenderMode, report Reporter) *Cycler {
	if report == nil {
		report = nopReporter{}
	}
	return &Cycler{modes: modes, report: report}
}

// AppendValues adds sub-values to the named mode. It reports whether the
// mode exists.
func (c *Cycler) AppendValues(mode string, values ...string) bool {
	for i := range c.modes {
		if c.modes[i].Name == mode {
			c.modes[i].Values = append(c.modes[i].Values, values...)
			return true
		}
	}
	return false
}

// Apply performs one transition.
func (c *Cycler) Apply(d Direction) error {
	switch d {
	case DirectionUp:
		c.stepMode(-1)
	case DirectionDown:
		c.stepMode(1)
	case DirectionLeft:
		c.stepSub(-1)
	case DirectionRight:
		c.stepSub(1)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return nil
}

func (c *Cycler) stepMode(delta int) {
	n := len(c.modes)
	if n == 0 {
		c.report.Report("mode", "empty", "no render modes configured")
		return
	}
	c.mode = wrap(c.mode+delta, n)
	c.sub = 0
	c.report.Report("mode", "change", c.describe())
}

func (c *Cycler) stepSub(delta int) {
	n := len(c.modes)
	if n == 0 {
		c.report.Report("mode", "empty", "no render modes configured")
		return
	}
	values := c.modes[c.mode].Values
	if len(values) == 0 {
		c.report.Report("mode", "empty_sub", fmt.Sprintf("%s has no sub-modes", c.modes[c.mode].Name))
		return
	}
	c.sub = wrap(c.sub+delta, len(values))
	c.report.Report("mode", "sub_change", c.describe())
}

func (c *Cycler) describe() string {
	return fmt.Sprintf("Render mode: %s [%s]", c.modes[c.mode].Name, c.Selected())
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Mode returns the active render mode.
func (c *Cycler) Mode() RenderMode {
	if len(c.modes) == 0 {
		return RenderMode{Policy: MatchNone}
	}
	return c.modes[c.mode]
}

// Modes returns the configured modes in cycling order.
func (c *Cycler) Modes() []RenderMode {
	return c.modes
}

// State returns the active (mode index, sub-index) pair.
func (c *Cycler) State() (mode, sub int) {
	return c.mode, c.sub
}

// Selected returns the active sub-value, or "" when the list is empty.
func (c *Cycler) Selected() string {
	m := c.Mode()
	if c.sub < len(m.Values) {
		return m.Values[c.sub]
	}
	return ""
}

// Eligible reports whether zone passes the active filter.
func (c *Cycler) Eligible(zone string) bool {
	switch c.Mode().Policy {
	case MatchAll:
		return true
	case MatchSelected:
		sel := c.Selected()
		return sel != "" && sel == zone
	default:
		return false
	}
}
