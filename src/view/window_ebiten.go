//go:build ebiten

package view

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"lifeboard/src/game"
)

type painter struct {
	img *ebiten.Image
	ctx context.Context
}

//Run opens the window and blocks until it is closed or ctx is cancelled
//It must be called from the main goroutine
func (w *Window) Run(ctx context.Context) error {
	width, height := w.c.Size()
	w.p = painter{img: ebiten.NewImage(width, height), ctx: ctx}

	ebiten.SetWindowTitle("Conway's Game of Life")
	ebiten.SetWindowSize(width*w.scale, height*w.scale)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

//Update handles the user input, the simulation itself is paced by the session
func (w *Window) Update() error {
	select {
	case <-w.p.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		f, _ := w.peekFrame()
		if f.Mode == game.ModeSetup {
			return ebiten.Termination
		}
		w.c.Edit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		w.c.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.c.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.c.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		w.c.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.c.Randomize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		settleTemplate(w.c)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		w.toggleHelp()
	}
	if !w.helpShown && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if p, ok := w.cellAt(ebiten.CursorPosition()); ok {
			w.c.Flip(p)
		}
	}
	return nil
}

//Draw renders the latest frame
func (w *Window) Draw(screen *ebiten.Image) {
	if f, dirty := w.takeFrame(); dirty {
		fillCells(w.buf, f, w.onColor, w.offColor)
		w.p.img.WritePixels(w.buf)
	}
	if w.helpShown {
		ebitenutil.DebugPrint(screen, windowHelp)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.p.img, op)
}

//Layout returns the logical screen size
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := w.c.Size()
	return width * w.scale, height * w.scale
}

func (w *Window) peekFrame() (game.Frame, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frame, w.dirty
}
