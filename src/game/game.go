package game

import (
	"time"

	"lifeboard/src/board"
	"lifeboard/src/seed"
)

//Mode is the session state
type Mode int

const (
	ModeSetup   Mode = iota //cells are edited, the board shows the initial snapshot
	ModeRunning             //generations advance on every tick
	ModePaused              //the simulation is stopped, Step advances one generation
)

func (m Mode) String() string {
	switch m {
	case ModeSetup:
		return "setup"
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

//Options represents the session's configurable options
type Options struct {
	Interval   time.Duration //delay between two generations while running
	MaxSteps   int           //pause when the generation reaches MaxSteps, 0 means no limit
	Randomizer seed.Decider  //seeding decision used by Randomize
	Template   seed.Template //template offered for settling in the setup mode, the zero value means none
}

//Status represents the status of the session at concrete moment
type Status struct {
	Generation    int
	LiveCells     int
	Mode          Mode
	IterationTime time.Duration //duration of the last board update
}

//Frame is the copy of the session state handed to the views
type Frame struct {
	Status
	Width  int
	Height int
	Cells  []board.Position
}

//Viewer is the interface to any Viewer - the object who displays the frames
//Refresh is called from the session loop and must not block
type Viewer interface {
	Refresh(f Frame)
}

//Controller is the set of commands the views send to the session
//all commands return immediately and are executed in order by the session loop
type Controller interface {
	Size() (width int, height int)
	Options() Options
	Start()
	Toggle()
	Step()
	Edit()
	Flip(p board.Position)
	Settle(t seed.Template, offset board.Position)
	Clear()
	Randomize()
}
