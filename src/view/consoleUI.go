package view

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"lifeboard/src/board"
	"lifeboard/src/game"
)

const boardView = "board"

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	c game.Controller
	g *gocui.Gui
	k []keyBindings

	mu    sync.Mutex
	frame game.Frame

	liveFiller string
	deadFiller string
	helpHidden bool //touched from the gocui loop only
}

var (
	modeDescr = map[game.Mode]string{
		game.ModeSetup:   aurora.Colorize("setup", aurora.BlueFg).String(),
		game.ModeRunning: aurora.Colorize("running", aurora.CyanFg).String(),
		game.ModePaused:  aurora.Colorize("paused", aurora.YellowFg).String(),
	}
)

//NewConsoleUI creates the terminal view sending the user commands to c
func NewConsoleUI(c game.Controller) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		c:          c,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}
	t.frame.Width, t.frame.Height = c.Size()

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to init the terminal")
	}

	t.g.Mouse = true
	t.g.InputEsc = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeyEnter, "ENTER", "Start", t.cmdStart, ""},
		{gocui.KeySpace, "SPACE", "Pause/Resume", t.cmdToggle, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{gocui.KeyEsc, "ESC", "Back to setup or exit", t.cmdEdit, ""},
		{'x', "X", "Clear", t.cmdClear, ""},
		{'r', "R", "Randomize", t.cmdRandomize, ""},
		{'t', "T", "Settle template", t.cmdSettle, ""},
		{'h', "H", "Hide help", t.cmdHelp, ""},
		{gocui.MouseLeft, "MOUSE", "Flip the cell", t.cmdMouseClick, boardView},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] key %s", kb.name)
		}
	}
	return nil
}

//Run runs the terminal main loop until the user quits or ctx is cancelled
func (t *ConsoleUI) Run(ctx context.Context) error {
	defer t.g.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			t.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
		case <-stop:
		}
	}()

	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[ConsoleUI.Run] main loop")
	}
	return nil
}

//Refresh stores the frame and redraws the panels, called by the session loop
func (t *ConsoleUI) Refresh(f game.Frame) {
	t.mu.Lock()
	t.frame = f
	t.mu.Unlock()

	t.renderField()
	t.renderStatus()
}

func (t *ConsoleUI) currentFrame() game.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

func (t *ConsoleUI) renderField() {
	f := t.currentFrame()
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View(boardView)
		if e != nil {
			return nil
		}
		//the entire field is redrawing at once
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, renderBoard(f, maxW, maxH, t.liveFiller, t.deadFiller))
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.currentFrame().Status
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", modeDescr[s.Mode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		o := t.c.Options()
		w, h := t.c.Size()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", w, h))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", o.Interval))
			steps := "unlimited"
			if o.MaxSteps > 0 {
				steps = fmt.Sprintf("%v steps", o.MaxSteps)
			}
			_, _ = fmt.Fprintln(v, t.renderProp("Pause at", "%v", steps))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView(boardView)
		_ = g.DeleteView("help")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView(boardView, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Board"
		v.Frame = true
	}
	t.renderField()

	v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
	}
	v.Clear()
	_, _ = fmt.Fprintln(v, t.helpText())

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStart(_ *gocui.View) error {
	t.c.Start()
	return nil
}

func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	t.c.Toggle()
	return nil
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.c.Step()
	return nil
}

//cmdEdit leaves the simulation to the setup mode, in the setup mode it exits
func (t *ConsoleUI) cmdEdit(_ *gocui.View) error {
	if t.currentFrame().Mode == game.ModeSetup {
		return gocui.ErrQuit
	}
	t.c.Edit()
	return nil
}

func (t *ConsoleUI) cmdSettle(_ *gocui.View) error {
	settleTemplate(t.c)
	return nil
}

func (t *ConsoleUI) cmdHelp(_ *gocui.View) error {
	t.helpHidden = !t.helpHidden
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.c.Clear()
	return nil
}

func (t *ConsoleUI) cmdRandomize(_ *gocui.View) error {
	t.c.Randomize()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	if p, ok := cellAt(t.currentFrame(), cx+ox, cy+oy); ok {
		t.c.Flip(p)
	}
	return nil
}

//cellAt converts the character position inside the board panel to the board cell
func cellAt(f game.Frame, cx int, cy int) (board.Position, bool) {
	if cx < 0 || cy < 0 || cx >= f.Width || cy >= f.Height {
		return board.Position{}, false
	}
	return board.P(cx, cy), true
}

//renderBoard draws the frame one char per cell, cropped to maxW x maxH
func renderBoard(f game.Frame, maxW int, maxH int, live string, dead string) string {
	alive := board.NewPositionSet(f.Cells...)
	crop := f.Width > maxW || f.Height > maxH

	var b bytes.Buffer
	for y := 0; y < f.Height; y++ {
		//discard the data outside the view area
		if y >= maxH {
			break
		}
		//line feed char
		if y != 0 {
			b.WriteByte(10)
		}
		if crop && y == maxH-1 {
			b.WriteString(aurora.Red("The board is larger than the viewing area").BgBlack().String())
			break
		}
		for x := 0; x < f.Width; x++ {
			if x >= maxW {
				break
			}
			if alive.Contains(board.P(x, y)) {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) helpText() string {
	if t.helpHidden {
		return "Press " + aurora.Green("H").String() + " to show the keybindings"
	}
	return helpLine(t.k)
}

func helpLine(k []keyBindings) string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}
