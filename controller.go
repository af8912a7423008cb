package ggview

import "math"

// Interaction tuning.
const (
	// WheelZoomFactor converts wheel delta to an exponential zoom rate.
	WheelZoomFactor = 0.005
	// KeyZoomStep is the zoom ratio for one plus or minus key press.
	KeyZoomStep = 1.25
	// PanStep is the pan distance in pixels for one Ctrl-arrow press.
	PanStep = 50.0
)

// Key identifies a key the viewer reacts to. Window layers map their
// native key codes onto these; anything else maps to KeyUnknown and is
// ignored.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeySpace
	KeyEnter
	KeyEscape
	KeyR
	KeyF
	KeyI
	KeyQ
	KeyPlus
	KeyMinus
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all bits in m are held.
func (m Modifiers) Has(bits Modifiers) bool { return m&bits == bits }

// KeyEvent is one key press with its held modifiers.
type KeyEvent struct {
	Key  Key
	Mods Modifiers
}

// DragEvent is pointer movement with a button held, in display pixels.
type DragEvent struct {
	Delta Vec2
}

// WheelEvent is scroll wheel movement at a display position.
type WheelEvent struct {
	Pos    Vec2
	DeltaY float64
}

// Controller turns input events into viewer operations. It holds no
// state of its own; like the Viewer it is meant for the UI goroutine.
type Controller struct {
	viewer *Viewer
	quit   func()
}

// NewController wires a controller to a viewer. quit is called when a
// quit key is pressed; nil is allowed.
func NewController(v *Viewer, quit func()) *Controller {
	return &Controller{viewer: v, quit: quit}
}

// HandleKey applies one key press.
//
// Arrows, PageUp/PageDown and Space move through the album. R rotates a
// quarter turn clockwise, or counterclockwise with Shift. F and Enter
// toggle between fit and 1:1. Plus and minus zoom about the display
// center, Ctrl-arrows nudge the view toward that edge, I toggles the
// status line, and Q or Escape quits.
func (c *Controller) HandleKey(e KeyEvent) {
	if e.Mods.Has(ModCtrl) {
		switch e.Key {
		case KeyLeft:
			c.viewer.Pan(V2(PanStep, 0))
		case KeyRight:
			c.viewer.Pan(V2(-PanStep, 0))
		case KeyUp:
			c.viewer.Pan(V2(0, PanStep))
		case KeyDown:
			c.viewer.Pan(V2(0, -PanStep))
		}
		return
	}

	switch e.Key {
	case KeyLeft, KeyUp, KeyPageUp:
		c.viewer.Navigate(-1)
	case KeyRight, KeyDown, KeyPageDown, KeySpace:
		c.viewer.Navigate(1)
	case KeyR:
		if e.Mods.Has(ModShift) {
			c.viewer.Rotate(-1)
		} else {
			c.viewer.Rotate(1)
		}
	case KeyF, KeyEnter:
		c.viewer.ToggleFitOr100()
	case KeyPlus:
		c.viewer.ZoomCenter(KeyZoomStep)
	case KeyMinus:
		c.viewer.ZoomCenter(1 / KeyZoomStep)
	case KeyI:
		c.viewer.ToggleHUD()
	case KeyQ, KeyEscape:
		if c.quit != nil {
			c.quit()
		}
	}
}

// HandleDrag pans the view by the pointer delta.
func (c *Controller) HandleDrag(e DragEvent) {
	c.viewer.Pan(e.Delta)
}

// HandleWheel zooms about the pointer position. The wheel delta maps
// exponentially so equal scroll distances give equal zoom ratios.
func (c *Controller) HandleWheel(e WheelEvent) {
	c.viewer.ZoomAt(e.Pos, math.Exp(e.DeltaY*WheelZoomFactor))
}
