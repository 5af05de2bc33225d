package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   Event
		wantOK bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Kind: Quit}, true},
		{
			"key down",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_T}},
			Event{Kind: KeyDown, Key: sdl.SCANCODE_T},
			true,
		},
		{
			"key repeat",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_T}},
			Event{},
			false,
		},
		{
			"key up",
			&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_T}},
			Event{},
			false,
		},
		{
			"mouse move",
			&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20, XRel: -3, YRel: 4},
			Event{Kind: MouseMove, Pos: mgl32.Vec2{10, 20}, Delta: mgl32.Vec2{-3, 4}},
			true,
		},
		{
			"right button down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT, X: 5, Y: 6},
			Event{Kind: MouseDown, Button: ButtonRight, Pos: mgl32.Vec2{5, 6}},
			true,
		},
		{
			"left button up",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 1, Y: 2},
			Event{Kind: MouseUp, Button: ButtonLeft, Pos: mgl32.Vec2{1, 2}},
			true,
		},
		{
			"wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_NORMAL},
			Event{Kind: Wheel, Delta: mgl32.Vec2{0, 2}},
			true,
		},
		{
			"flipped wheel",
			&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED},
			Event{Kind: Wheel, Delta: mgl32.Vec2{0, -2}},
			true,
		},
		{
			"file drop",
			&sdl.DropEvent{Type: sdl.DROPFILE, File: "/tmp/cube.obj"},
			Event{Kind: FileDrop, Path: "/tmp/cube.obj"},
			true,
		},
		{"empty drop", &sdl.DropEvent{Type: sdl.DROPFILE}, Event{}, false},
		{"window event", &sdl.WindowEvent{Type: sdl.WINDOWEVENT}, Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("translate() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsKeyDownOutOfRange(t *testing.T) {
	in := &Input{keys: []uint8{0, 1}}

	if !in.IsKeyDown(1) {
		t.Error("IsKeyDown(1) = false, want true")
	}
	if in.IsKeyDown(0) || in.IsKeyDown(sdl.SCANCODE_Z) {
		t.Error("IsKeyDown() reported a key that is not held")
	}
}
