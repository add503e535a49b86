// Package scene drives the render loop: it owns the frame schedule and
// decides, per frame, whether anything changed enough to redraw.
package scene

import (
	"fmt"
	"time"

	"polyview/pkg/models"
	"polyview/pkg/render"
)

// Display is the presentation backend contract. render.Terminal is the
// production implementation; tests substitute fakes.
type Display interface {
	IsOpen() bool
	IsKeyDown(render.Key) bool
	UpdateWithBuffer(pixels []uint32, width, height int) error
	LimitUpdateRate(time.Duration)
	Close()
}

// Input is the key-state view an Updater receives: the polling subset
// of Display.
type Input interface {
	IsKeyDown(render.Key) bool
}

// Updater supplies the object's placement each frame. It may also move
// the camera; camera changes count toward the dirty check through the
// camera's modified flag.
type Updater interface {
	Update(elapsed time.Duration, input Input, cam *render.Camera) render.Orientation
}

// noInput is the Input for display-less rendering.
type noInput struct{}

func (noInput) IsKeyDown(render.Key) bool { return false }

// Scene ties the pipeline together: one object, one camera, one buffer,
// one display. Everything runs on the caller's goroutine.
type Scene struct {
	object  *models.Object
	camera  *render.Camera
	updater Updater
	display Display
	buffer  *render.Buffer

	background    uint32
	frameInterval time.Duration

	lastState *render.Orientation
}

// New assembles a scene. display may be nil when only RenderOnce will
// be used; Run requires one. A zero frameInterval leaves the display
// rate uncapped.
func New(object *models.Object, camera *render.Camera, updater Updater, display Display, buffer *render.Buffer, background uint32, frameInterval time.Duration) *Scene {
	if display != nil {
		display.LimitUpdateRate(frameInterval)
	}
	return &Scene{
		object:        object,
		camera:        camera,
		updater:       updater,
		display:       display,
		buffer:        buffer,
		background:    background,
		frameInterval: frameInterval,
	}
}

// Run loops until the display closes. Each iteration asks the updater
// for the frame's orientation and redraws only when that state differs
// from the last rendered one or the camera reports a change; idle
// iterations just sleep out the frame interval. The camera's modified
// flag is consumed every iteration so one change triggers one redraw.
func (s *Scene) Run() error {
	started := time.Now()

	for s.display.IsOpen() {
		state := s.updater.Update(time.Since(started), s.display, s.camera)

		dirty := s.camera.ConsumeModified()
		if s.lastState == nil || *s.lastState != state {
			dirty = true
		}

		if !dirty {
			wait := s.frameInterval
			if wait <= 0 {
				wait = time.Millisecond
			}
			time.Sleep(wait)
			continue
		}

		s.DrawFrame(state)
		s.lastState = &state

		if err := s.display.UpdateWithBuffer(s.buffer.Pixels, s.buffer.Width, s.buffer.Height); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}
	}
	return nil
}

// DrawFrame runs one full pipeline pass for the given orientation:
// clear, cull and project, rasterize with depth testing.
func (s *Scene) DrawFrame(state render.Orientation) {
	s.buffer.Clear(s.background)
	tris := render.VisibleTriangles(s.object, s.camera, state, s.buffer.Width, s.buffer.Height)
	s.buffer.DrawTriangles(tris, render.GrayColor)
}

// RenderOnce produces a single frame with no display and no pacing —
// the still-export mode. The returned buffer is the scene's own.
func (s *Scene) RenderOnce() *render.Buffer {
	state := s.updater.Update(0, noInput{}, s.camera)
	s.camera.ConsumeModified()
	s.DrawFrame(state)
	return s.buffer
}
