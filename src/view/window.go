package view

import (
	"image/color"
	"sync"

	"lifeboard/src/board"
	"lifeboard/src/game"
)

//Window is the graphical viewer, drawing one scale x scale square per cell
//The GUI itself is only built with the ebiten build tag
type Window struct {
	c     game.Controller
	scale int

	mu    sync.Mutex
	frame game.Frame
	dirty bool

	onColor  color.Color
	offColor color.Color
	buf      []byte
	p        painter

	helpShown bool //touched from the ebiten loop only
}

//windowHelp is drawn over the board until H is pressed
const windowHelp = `Press "R" to randomize the cells
Press "T" to settle the template
Press "X" to clear all cells
Press "Enter" to start, "Space" to pause or resume, "N" for the next step
Press "Esc" to exit or to return to the setup if running
Press "H" to hide/show this text and show/hide the board for cell placement`

//NewWindow creates the window viewer sending the user commands to c
func NewWindow(c game.Controller, scale int) *Window {
	if scale < 1 {
		scale = 1
	}
	w, h := c.Size()
	return &Window{
		c:        c,
		scale:    scale,
		frame:    game.Frame{Width: w, Height: h},
		dirty:    true,
		onColor:  color.White,
		offColor: color.Black,
		buf:      make([]byte, 4*w*h),

		helpShown: true,
	}
}

//Refresh stores the frame to be drawn on the next Draw call
func (w *Window) Refresh(f game.Frame) {
	w.mu.Lock()
	w.frame = f
	w.dirty = true
	w.mu.Unlock()
}

//takeFrame returns the latest frame and whether it changed since the last call
func (w *Window) takeFrame() (game.Frame, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	dirty := w.dirty
	w.dirty = false
	return w.frame, dirty
}

//toggleHelp switches between the help text and the board, returns whether the help is shown now
func (w *Window) toggleHelp() bool {
	w.helpShown = !w.helpShown
	return w.helpShown
}

//cellAt converts the pixel position to the board cell
func (w *Window) cellAt(px, py int) (board.Position, bool) {
	if px < 0 || py < 0 {
		return board.Position{}, false
	}
	w.mu.Lock()
	f := w.frame
	w.mu.Unlock()
	return cellAt(f, px/w.scale, py/w.scale)
}

//fillCells converts the frame into RGBA pixels in buf, one pixel per cell
func fillCells(buf []byte, f game.Frame, on, off color.Color) {
	rOff, gOff, bOff, aOff := off.RGBA()
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = uint8(rOff >> 8)
		buf[i+1] = uint8(gOff >> 8)
		buf[i+2] = uint8(bOff >> 8)
		buf[i+3] = uint8(aOff >> 8)
	}
	rOn, gOn, bOn, aOn := on.RGBA()
	for _, p := range f.Cells {
		if p.X < 0 || p.Y < 0 || p.X >= f.Width || p.Y >= f.Height {
			continue
		}
		base := (p.Y*f.Width + p.X) * 4
		if base+3 >= len(buf) {
			continue
		}
		buf[base+0] = uint8(rOn >> 8)
		buf[base+1] = uint8(gOn >> 8)
		buf[base+2] = uint8(bOn >> 8)
		buf[base+3] = uint8(aOn >> 8)
	}
}
