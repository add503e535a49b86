package render

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// Key identifies a key the render loop can poll, named the way the
// terminal event stream spells them.
type Key string

const (
	KeyEscape Key = "escape"
	KeySpace  Key = "space"
	KeyA      Key = "a"
	KeyD      Key = "d"
	KeyR      Key = "r"
)

// pollableKeys is the set IsKeyDown tracks from the event stream.
var pollableKeys = []Key{KeySpace, KeyA, KeyD, KeyR}

// Terminals report key presses (with autorepeat), not held state, so a
// key counts as down for a short window after each press event.
const keyHoldWindow = 150 * time.Millisecond

// Terminal presents the pixel buffer in the terminal using half-block
// cells: every character cell carries two vertically stacked pixels,
// the top one as the foreground of ▀ and the bottom one as the
// background. One event goroutine feeds the key state; everything else
// runs on the render thread.
type Terminal struct {
	term *uv.Terminal
	cols int
	rows int

	mu      sync.Mutex
	open    bool
	pressed map[Key]time.Time

	frameInterval time.Duration
	lastPresent   time.Time
}

// NewTerminal takes over the current terminal: alternate screen, hidden
// cursor, raw input. Close restores it.
func NewTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	t := &Terminal{
		term:    term,
		cols:    cols,
		rows:    rows,
		open:    true,
		pressed: make(map[Key]time.Time),
	}
	go t.readEvents()
	return t, nil
}

// BufferSize returns the pixel dimensions matching the terminal: one
// pixel per column, two pixel rows per cell row.
func (t *Terminal) BufferSize() (width, height int) {
	return t.cols, t.rows * 2
}

// readEvents drains the terminal event stream into the key state.
func (t *Terminal) readEvents() {
	for ev := range t.term.Events() {
		key, ok := ev.(uv.KeyPressEvent)
		if !ok {
			continue
		}

		if key.MatchString("escape") || key.MatchString("ctrl+c") {
			t.mu.Lock()
			t.open = false
			t.mu.Unlock()
			return
		}

		for _, k := range pollableKeys {
			if key.MatchString(string(k)) {
				t.mu.Lock()
				t.pressed[k] = time.Now()
				t.mu.Unlock()
				break
			}
		}
	}

	// Event stream closed under us (terminal went away).
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
}

// IsOpen reports whether the display is still accepting frames. It
// turns false once the user quits with Esc or Ctrl+C.
func (t *Terminal) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// IsKeyDown reports whether the key was pressed within the hold window.
func (t *Terminal) IsKeyDown(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.pressed[k]
	return ok && time.Since(at) <= keyHoldWindow
}

// LimitUpdateRate caps presentation to one frame per interval; a zero
// interval removes the cap.
func (t *Terminal) LimitUpdateRate(interval time.Duration) {
	t.frameInterval = interval
}

// UpdateWithBuffer presents a full frame. The pixel slice must match
// the dimensions from BufferSize exactly. When a rate limit is set the
// call sleeps out the remainder of the frame interval.
func (t *Terminal) UpdateWithBuffer(pixels []uint32, width, height int) error {
	if width != t.cols || height != t.rows*2 {
		return fmt.Errorf("buffer is %dx%d, display wants %dx%d", width, height, t.cols, t.rows*2)
	}
	if len(pixels) != width*height {
		return fmt.Errorf("pixel slice has %d entries, want %d", len(pixels), width*height)
	}

	for row := range t.rows {
		topY := row * 2
		botY := topY + 1
		for col := range t.cols {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: unpackColor(pixels[topY*width+col]),
					Bg: unpackColor(pixels[botY*width+col]),
				},
			}
			t.term.SetCell(col, row, cell)
		}
	}

	if err := t.term.Display(); err != nil {
		return fmt.Errorf("display frame: %w", err)
	}

	if t.frameInterval > 0 {
		if wait := t.frameInterval - time.Since(t.lastPresent); wait > 0 {
			time.Sleep(wait)
		}
	}
	t.lastPresent = time.Now()
	return nil
}

// Close leaves the alternate screen and restores the terminal.
func (t *Terminal) Close() {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()

	t.term.ExitAltScreen()
	t.term.ShowCursor()
	t.term.Shutdown(context.Background())
}

// unpackColor converts a packed 0xRRGGBB pixel to a terminal cell color.
func unpackColor(p uint32) color.Color {
	return color.RGBA{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: 0xff,
	}
}
