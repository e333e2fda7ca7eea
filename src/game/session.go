package game

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"lifeboard/src/board"
	"lifeboard/src/seed"
)

var _ Controller = (*Session)(nil)

//ErrClosed is returned by Snapshot when the session loop is not running anymore
var ErrClosed = errors.New("session is closed")

//Session owns the board and serializes every operation on it
//commands are queued to the control channel and executed by Serve on a single goroutine,
//so the board is never touched concurrently
type Session struct {
	board   *board.Board
	options Options
	logger  zerolog.Logger

	mode          Mode
	iterationTime time.Duration

	stateCh   chan Status
	controlCh chan func()
	done      chan struct{}
	doneOnce  sync.Once

	viewsMu sync.Mutex
	views   []Viewer
}

//NewSession creates the session in setup mode
//stateCh is optional, when given the session writes its status after every command and tick
func NewSession(b *board.Board, o Options, stateCh chan Status, logger zerolog.Logger) *Session {
	return &Session{
		board:     b,
		options:   o,
		logger:    logger,
		mode:      ModeSetup,
		stateCh:   stateCh,
		controlCh: make(chan func(), 16),
		done:      make(chan struct{}),
	}
}

//Size returns the board dimensions
func (s *Session) Size() (int, int) {
	return s.board.Width(), s.board.Height()
}

//Options returns the session configuration
func (s *Session) Options() Options {
	return s.options
}

//StateCh returns the channel with the session's status updates
func (s *Session) StateCh() chan Status {
	return s.stateCh
}

//Register registers the viewer - the session will call the viewer when the state is changed
func (s *Session) Register(v Viewer) {
	s.viewsMu.Lock()
	s.views = append(s.views, v)
	s.viewsMu.Unlock()
}

//Serve is the main loop, executes the commands and advances the running board every Interval
//returns when ctx is cancelled
func (s *Session) Serve(ctx context.Context) error {
	defer s.doneOnce.Do(func() { close(s.done) })

	s.logger.Info().
		Int("width", s.board.Width()).
		Int("height", s.board.Height()).
		Dur("interval", s.options.Interval).
		Int("maxSteps", s.options.MaxSteps).
		Msg("session started")

	s.publish(ctx)
	var tick <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Int("generation", s.board.Generation()).Msg("session stopped")
			return nil
		case cmd := <-s.controlCh:
			cmd()
		case <-tick:
			tick = nil
			s.tick()
		}
		s.publish(ctx)

		//the delay is counted from the end of the previous frame
		if s.mode != ModeRunning {
			tick = nil
		} else if tick == nil {
			tick = time.After(s.options.Interval)
		}
	}
}

//Snapshot returns the current frame, it is executed by the loop after the queued commands
func (s *Session) Snapshot(ctx context.Context) (Frame, error) {
	reply := make(chan Frame, 1)
	if !s.send(ctx, func() { reply <- s.frame() }) {
		return Frame{}, s.sendErr(ctx)
	}
	select {
	case f := <-reply:
		return f, nil
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case <-s.done:
		return Frame{}, ErrClosed
	}
}

//Start switches setup or paused session to running, returns immediately
func (s *Session) Start() {
	s.do("start", func() {
		if s.mode == ModeRunning {
			return
		}
		s.switchMode(ModeRunning)
	})
}

//Toggle starts, pauses or resumes depending on the current mode, returns immediately
func (s *Session) Toggle() {
	s.do("toggle", func() {
		if s.mode == ModeRunning {
			s.switchMode(ModePaused)
		} else {
			s.switchMode(ModeRunning)
		}
	})
}

//Step advances the setup or paused session by one generation and leaves it paused, returns immediately
func (s *Session) Step() {
	s.do("step", func() {
		if s.mode == ModeRunning {
			s.logger.Debug().Msg("step ignored while running")
			return
		}
		s.switchMode(ModePaused)
		start := time.Now()
		//the first update after setup only stages the generation
		for gen := s.board.Generation(); gen == s.board.Generation(); {
			s.board.Update()
		}
		s.iterationTime = time.Since(start)
	})
}

//Edit returns to the setup mode restoring the initial cells, returns immediately
func (s *Session) Edit() {
	s.do("edit", func() {
		s.board.Reset()
		s.iterationTime = 0
		if s.mode != ModeSetup {
			s.switchMode(ModeSetup)
		}
	})
}

//Flip inverses the cell at p, honoured in the setup mode only, returns immediately
func (s *Session) Flip(p board.Position) {
	s.do("flip", func() {
		if s.mode != ModeSetup {
			s.logger.Debug().Stringer("cell", p).Stringer("mode", s.mode).Msg("flip ignored")
			return
		}
		if err := s.board.FlipCell(p); err != nil {
			s.logger.Debug().Err(err).Msg("flip rejected")
		}
	})
}

//Settle adds the template cells at offset to the initial state, honoured in the setup mode only
func (s *Session) Settle(t seed.Template, offset board.Position) {
	s.do("settle", func() {
		if s.mode != ModeSetup {
			s.logger.Debug().Str("template", t.Name).Msg("settle ignored")
			return
		}
		skipped := t.Settle(s.board, offset)
		s.logger.Info().Str("template", t.Name).Stringer("offset", offset).Int("skipped", skipped).Msg("template settled")
	})
}

//Clear kills all cells including the initial ones, returns immediately
func (s *Session) Clear() {
	s.do("clear", func() {
		s.board.Clear(true)
		s.iterationTime = 0
	})
}

//Randomize replaces the initial cells with the cells picked by the randomizer, returns immediately
func (s *Session) Randomize() {
	s.do("randomize", func() {
		if s.options.Randomizer == nil {
			s.logger.Warn().Msg("randomize ignored, no randomizer")
			return
		}
		n := seed.Populate(s.board, s.options.Randomizer)
		s.iterationTime = 0
		s.logger.Info().Int("cells", n).Msg("board randomized")
	})
}

//tick does one paced board update
func (s *Session) tick() {
	if s.mode != ModeRunning {
		return
	}
	start := time.Now()
	prev := s.board.Generation()
	s.board.Update()
	s.iterationTime = time.Since(start)

	gen := s.board.Generation()
	if gen != prev && gen == s.options.MaxSteps {
		s.logger.Info().Int("generation", gen).Msg("max steps reached")
		s.switchMode(ModePaused)
	}
}

func (s *Session) switchMode(to Mode) {
	s.logger.Debug().Stringer("from", s.mode).Stringer("to", to).Msg("mode switched")
	s.mode = to
}

func (s *Session) status() Status {
	return Status{
		Generation:    s.board.Generation(),
		LiveCells:     s.board.Len(),
		Mode:          s.mode,
		IterationTime: s.iterationTime,
	}
}

func (s *Session) frame() Frame {
	return Frame{
		Status: s.status(),
		Width:  s.board.Width(),
		Height: s.board.Height(),
		Cells:  s.board.LiveCells(),
	}
}

//publish writes the status to stateCh and refreshes the views
func (s *Session) publish(ctx context.Context) {
	if s.stateCh != nil {
		select {
		case s.stateCh <- s.status():
		case <-ctx.Done():
		}
	}

	s.viewsMu.Lock()
	views := append([]Viewer(nil), s.views...)
	s.viewsMu.Unlock()
	if len(views) == 0 {
		return
	}
	f := s.frame()
	for _, v := range views {
		v.Refresh(f)
	}
}

func (s *Session) do(name string, cmd func()) {
	s.send(context.Background(), func() {
		s.logger.Debug().Str("cmd", name).Stringer("mode", s.mode).Msg("command")
		cmd()
	})
}

//send queues cmd to the loop, reports false if the loop is gone
func (s *Session) send(ctx context.Context, cmd func()) bool {
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (s *Session) sendErr(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrClosed
}
