// Package input turns SDL2 events into the actions the viewer reacts to.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

// Kind classifies an event.
type Kind int

const (
	Quit Kind = iota + 1
	KeyDown
	MouseMove
	MouseDown
	MouseUp
	Wheel
	FileDrop
)

// MouseButton names the buttons the viewer binds.
type MouseButton uint8

const (
	ButtonLeft   MouseButton = sdl.BUTTON_LEFT
	ButtonMiddle MouseButton = sdl.BUTTON_MIDDLE
	ButtonRight  MouseButton = sdl.BUTTON_RIGHT
)

// Event is one translated SDL event. Only the fields of its Kind are set.
type Event struct {
	Kind Kind

	Key    sdl.Scancode // KeyDown
	Button MouseButton  // MouseDown, MouseUp

	// Cursor position in window points for mouse events.
	Pos mgl32.Vec2
	// Relative motion for MouseMove, scroll amount for Wheel.
	Delta mgl32.Vec2

	Path string // FileDrop
}

// Input collects the events of one frame and the held-key state.
type Input struct {
	events []Event
	keys   []uint8
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL queue. It reports true once a quit was requested.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		e, ok := translate(ev)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		quit = quit || e.Kind == Quit
	}

	i.keys = sdl.GetKeyboardState()
	return quit
}

// translate maps an SDL event to an Event. Key repeats, key releases and
// events the viewer ignores report false.
func translate(ev sdl.Event) (Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return Event{Kind: Quit}, true

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return Event{}, false
		}
		return Event{Kind: KeyDown, Key: e.Keysym.Scancode}, true

	case *sdl.MouseMotionEvent:
		return Event{
			Kind:  MouseMove,
			Pos:   mgl32.Vec2{float32(e.X), float32(e.Y)},
			Delta: mgl32.Vec2{float32(e.XRel), float32(e.YRel)},
		}, true

	case *sdl.MouseButtonEvent:
		kind := MouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			kind = MouseUp
		}
		return Event{
			Kind:   kind,
			Button: MouseButton(e.Button),
			Pos:    mgl32.Vec2{float32(e.X), float32(e.Y)},
		}, true

	case *sdl.MouseWheelEvent:
		delta := mgl32.Vec2{float32(e.X), float32(e.Y)}
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = delta.Mul(-1)
		}
		return Event{Kind: Wheel, Delta: delta}, true

	case *sdl.DropEvent:
		if e.Type != sdl.DROPFILE || e.File == "" {
			return Event{}, false
		}
		return Event{Kind: FileDrop, Path: e.File}, true
	}
	return Event{}, false
}

// Events returns the events of the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyDown reports whether a key is held after the last Update.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}
