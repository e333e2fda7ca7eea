package board

import (
	"testing"

	"github.com/pkg/errors"
)

func newBoard(t testing.TB, w, h int, cells ...Position) *Board {
	t.Helper()
	b, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	for _, p := range cells {
		if err := b.AddCell(p, true); err != nil {
			t.Fatalf("AddCell(%v): %v", p, err)
		}
	}
	return b
}

//advance updates the board until gens computed generations are applied
func advance(b *Board, gens int) {
	for b.Generation() < gens {
		b.Update()
	}
}

func translate(ps []Position, d Position) []Position {
	out := make([]Position, len(ps))
	for i, p := range ps {
		out[i] = p.Add(d)
	}
	SortPositions(out)
	return out
}

func expectCells(t *testing.T, b *Board, want []Position) {
	t.Helper()
	got := b.LiveCells()
	if !NewPositionSet(got...).Equal(NewPositionSet(want...)) {
		t.Fatalf("live cells %v, expected %v", got, want)
	}
	checkOccupancy(t, b)
}

//checkOccupancy verifies the dense array mirrors the live set
func checkOccupancy(t *testing.T, b *Board) {
	t.Helper()
	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			p := P(x, y)
			if b.occupancy[x][y] != b.cells.Contains(p) {
				t.Fatalf("cell %v occupancy=%v, in set=%v", p, b.occupancy[x][y], b.cells.Contains(p))
			}
		}
	}
}

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
		b, err := New(d[0], d[1])
		if err == nil || b != nil {
			t.Fatalf("New(%d, %d) = %v, %v, expected error", d[0], d[1], b, err)
		}
		if errors.Cause(err) != ErrInvalidDimensions {
			t.Fatalf("New(%d, %d) error %v, expected ErrInvalidDimensions", d[0], d[1], err)
		}
	}
}

func TestAddCellQueuedTwice(t *testing.T) {
	b := newBoard(t, 5, 5)
	p := P(2, 3)
	for i := 0; i < 2; i++ {
		if err := b.AddCell(p, false); err != nil {
			t.Fatal(err)
		}
	}
	if b.Alive(p) {
		t.Fatal("queued cell must not be alive before Update")
	}
	b.Update()
	if !b.Alive(p) || b.Len() != 1 {
		t.Fatalf("cell %v alive=%v, len=%d, expected alive once", p, b.Alive(p), b.Len())
	}
	checkOccupancy(t, b)
}

func TestAddCellInitialIsImmediate(t *testing.T) {
	b := newBoard(t, 5, 5)
	p := P(4, 4)
	_ = b.AddCell(p, true)
	_ = b.AddCell(p, true)
	if !b.Alive(p) || !b.InitiallyAlive(p) {
		t.Fatal("initial add must apply immediately to both states")
	}
	if b.Len() != 1 || len(b.InitialCells()) != 1 {
		t.Fatalf("len=%d initial=%d, expected 1 and 1", b.Len(), len(b.InitialCells()))
	}
}

func TestDeleteCell(t *testing.T) {
	p := P(1, 1)
	b := newBoard(t, 5, 5, p)

	_ = b.DeleteCell(p, false)
	_ = b.DeleteCell(p, false)
	if !b.Alive(p) {
		t.Fatal("queued deletion must not apply before Update")
	}
	b.Update()
	if b.Alive(p) || b.Len() != 0 {
		t.Fatalf("cell %v alive=%v len=%d after deletion", p, b.Alive(p), b.Len())
	}
	checkOccupancy(t, b)

	if !b.InitiallyAlive(p) {
		t.Fatal("queued deletion must keep the initial snapshot")
	}
	_ = b.DeleteCell(p, true)
	if b.InitiallyAlive(p) || len(b.InitialCells()) != 0 {
		t.Fatal("initial deletion must clear the initial snapshot")
	}
}

func TestDeleteAbsentCellIsNoop(t *testing.T) {
	live := P(0, 0)
	b := newBoard(t, 3, 3, live)
	if err := b.DeleteCell(P(2, 2), true); err != nil {
		t.Fatalf("DeleteCell on dead cell: %v", err)
	}
	expectCells(t, b, []Position{live})
}

func TestFlipCell(t *testing.T) {
	b := newBoard(t, 4, 4)
	p := P(3, 0)
	_ = b.FlipCell(p)
	if !b.Alive(p) || !b.InitiallyAlive(p) {
		t.Fatal("flip of dead cell must make it alive in both states")
	}
	if a, d := b.Pending(); len(a) != 0 || len(d) != 0 {
		t.Fatalf("flip must bypass queues, pending %v %v", a, d)
	}
	_ = b.FlipCell(p)
	if b.Alive(p) || b.InitiallyAlive(p) {
		t.Fatal("second flip must kill the cell")
	}
	checkOccupancy(t, b)
}

func TestOutOfBounds(t *testing.T) {
	b := newBoard(t, 5, 5, P(2, 2))
	ops := map[string]func(p Position) error{
		"AddCell":         func(p Position) error { return b.AddCell(p, false) },
		"AddCellInitial":  func(p Position) error { return b.AddCell(p, true) },
		"DeleteCell":      func(p Position) error { return b.DeleteCell(p, false) },
		"DeleteCellInitl": func(p Position) error { return b.DeleteCell(p, true) },
		"FlipCell":        b.FlipCell,
	}
	for name, op := range ops {
		for _, p := range []Position{P(-1, 0), P(0, -1), P(5, 0), P(0, 5), P(-1, -1)} {
			err := op(p)
			if errors.Cause(err) != ErrOutOfBounds {
				t.Fatalf("%s(%v) error %v, expected ErrOutOfBounds", name, p, err)
			}
		}
	}
	if a, d := b.Pending(); len(a) != 0 || len(d) != 0 {
		t.Fatalf("rejected calls must not stage anything, pending %v %v", a, d)
	}
	expectCells(t, b, []Position{P(2, 2)})
	if b.Alive(P(-1, -1)) || b.InitiallyAlive(P(7, 7)) {
		t.Fatal("positions outside the board are dead")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	b := newBoard(t, 6, 6, P(1, 1), P(1, 2), P(1, 3))
	b.Update()
	b.Clear(false)
	b.Clear(false)
	if b.Len() != 0 || b.Generation() != 0 {
		t.Fatalf("len=%d gen=%d after clear", b.Len(), b.Generation())
	}
	if a, d := b.Pending(); len(a) != 0 || len(d) != 0 {
		t.Fatalf("clear must drop queues, pending %v %v", a, d)
	}
	checkOccupancy(t, b)
	if len(b.InitialCells()) != 3 {
		t.Fatal("clear without initial must keep the snapshot")
	}

	b.Clear(true)
	b.Clear(true)
	if len(b.InitialCells()) != 0 || b.InitiallyAlive(P(1, 1)) {
		t.Fatal("clear with initial must empty the snapshot")
	}
}

func TestResetRestoresInitialSnapshot(t *testing.T) {
	initial := []Position{P(1, 2), P(2, 2), P(3, 2), P(6, 6), P(7, 6)}
	b := newBoard(t, 10, 10, initial...)

	advance(b, 3)
	_ = b.AddCell(P(9, 9), false)
	_ = b.DeleteCell(P(2, 2), false)
	b.Update()
	b.Reset()

	expectCells(t, b, initial)
	if b.Generation() != 0 {
		t.Fatalf("generation %d after reset, expected 0", b.Generation())
	}
	if a, d := b.Pending(); len(a) != 0 || len(d) != 0 {
		t.Fatalf("reset must drop queues, pending %v %v", a, d)
	}

	//the snapshot follows the latest explicit marking
	_ = b.FlipCell(P(0, 0))
	_ = b.DeleteCell(P(6, 6), true)
	advance(b, 2)
	b.Reset()
	expectCells(t, b, []Position{P(0, 0), P(1, 2), P(2, 2), P(3, 2), P(7, 6)})
}

func TestUpdateCommitsPreviousAnalysis(t *testing.T) {
	b := newBoard(t, 5, 5, P(1, 2), P(2, 2), P(3, 2))

	b.Update()
	expectCells(t, b, []Position{P(1, 2), P(2, 2), P(3, 2)})
	a, d := b.Pending()
	if !NewPositionSet(a...).Equal(NewPositionSet(P(2, 1), P(2, 3))) {
		t.Fatalf("staged births %v, expected (2,1) (2,3)", a)
	}
	if !NewPositionSet(d...).Equal(NewPositionSet(P(1, 2), P(3, 2))) {
		t.Fatalf("staged deaths %v, expected (1,2) (3,2)", d)
	}
	if b.Generation() != 0 {
		t.Fatalf("generation %d, expected 0", b.Generation())
	}

	b.Update()
	expectCells(t, b, []Position{P(2, 1), P(2, 2), P(2, 3)})
	if b.Generation() != 1 {
		t.Fatalf("generation %d, expected 1", b.Generation())
	}
}

func TestNeighbourRule(t *testing.T) {
	center := P(2, 2)
	for n := 0; n <= 8; n++ {
		for _, alive := range []bool{true, false} {
			b := newBoard(t, 5, 5)
			if alive {
				_ = b.AddCell(center, true)
			}
			for _, p := range b.Neighbours(center)[:n] {
				_ = b.AddCell(p, true)
			}
			if got := b.LiveNeighbours(center); got != n {
				t.Fatalf("live neighbours %d, expected %d", got, n)
			}

			b.Update()
			a, d := b.Pending()
			born := NewPositionSet(a...).Contains(center)
			dies := NewPositionSet(d...).Contains(center)
			if alive {
				if born {
					t.Fatalf("n=%d: live cell staged for birth", n)
				}
				if dies != (n < 2 || n > 3) {
					t.Fatalf("n=%d: live cell staged for deletion=%v", n, dies)
				}
			} else {
				if dies {
					t.Fatalf("n=%d: dead cell staged for deletion", n)
				}
				if born != (n == 3) {
					t.Fatalf("n=%d: dead cell staged for birth=%v", n, born)
				}
			}
		}
	}
}

func TestCorner(t *testing.T) {
	b := newBoard(t, 5, 5, P(0, 0), P(1, 0), P(0, 1))
	if ns := b.Neighbours(P(0, 0)); len(ns) != 3 {
		t.Fatalf("corner neighbours %v, expected 3", ns)
	}
	if ns := b.Neighbours(P(4, 4)); len(ns) != 3 {
		t.Fatalf("corner neighbours %v, expected 3", ns)
	}
	if ns := b.Neighbours(P(2, 0)); len(ns) != 5 {
		t.Fatalf("edge neighbours %v, expected 5", ns)
	}
	if n := b.LiveNeighbours(P(1, 1)); n != 3 {
		t.Fatalf("(1,1) live neighbours %d, expected 3", n)
	}

	advance(b, 1)
	//the corner survives with 2 neighbours, (1,1) is born with exactly 3
	expectCells(t, b, []Position{P(0, 0), P(1, 0), P(0, 1), P(1, 1)})
}

func TestGlider(t *testing.T) {
	glider := []Position{P(1, 0), P(2, 1), P(0, 2), P(1, 2), P(2, 2)}
	start := translate(glider, P(2, 2))
	b := newBoard(t, 10, 10, start...)

	advance(b, 4)
	expectCells(t, b, translate(start, P(1, 1)))

	advance(b, 8)
	expectCells(t, b, translate(start, P(2, 2)))
}

func TestGliderDiesOnTheEdge(t *testing.T) {
	glider := []Position{P(1, 0), P(2, 1), P(0, 2), P(1, 2), P(2, 2)}
	b := newBoard(t, 6, 6, glider...)
	advance(b, 40)
	//without wrapping the glider turns into a block in the corner
	expectCells(t, b, []Position{P(4, 4), P(5, 4), P(4, 5), P(5, 5)})
}

func TestBlockStillLife(t *testing.T) {
	block := []Position{P(3, 3), P(4, 3), P(3, 4), P(4, 4)}
	b := newBoard(t, 8, 8, block...)
	for gen := 1; gen <= 10; gen++ {
		advance(b, gen)
		expectCells(t, b, block)
		if a, d := b.Pending(); len(a) != 0 || len(d) != 0 {
			t.Fatalf("gen %d: block staged changes %v %v", gen, a, d)
		}
	}
}

func TestBlinker(t *testing.T) {
	row := []Position{P(1, 2), P(2, 2), P(3, 2)}
	column := []Position{P(2, 1), P(2, 2), P(2, 3)}
	b := newBoard(t, 5, 5, row...)

	advance(b, 1)
	expectCells(t, b, column)
	advance(b, 2)
	expectCells(t, b, row)
	advance(b, 7)
	expectCells(t, b, column)
}

func TestOvercrowdedDeadCellIsNotBorn(t *testing.T) {
	//(1,1) has 4 live neighbours
	b := newBoard(t, 3, 3, P(0, 0), P(2, 0), P(0, 2), P(2, 2))
	b.Update()
	a, _ := b.Pending()
	if NewPositionSet(a...).Contains(P(1, 1)) {
		t.Fatalf("dead cell with 4 neighbours staged for birth: %v", a)
	}
}

func TestEmptyBoardStaysEmpty(t *testing.T) {
	b := newBoard(t, 4, 3)
	advance(b, 3)
	if b.Len() != 0 {
		t.Fatalf("empty board has %d cells", b.Len())
	}
}
