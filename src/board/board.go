package board

import (
	"github.com/pkg/errors"
)

/*
	Board is the bounded Game of Life field.
	The live cells are kept twice: as the set of positions (enumeration for drawing and analysis)
	and as the dense occupancy array (O(1) lookup by position), both are always kept in sync.
	Generation changes are not applied in place: Update commits the changes computed by the previous
	call and then stages the changes of the next generation, so the analysis always reads a stable field.
	The Board is not safe for concurrent use.
*/
type Board struct {
	width  int
	height int

	cells     PositionSet
	occupancy [][]bool

	initialCells     PositionSet
	initialOccupancy [][]bool

	additions []Position
	deletions []Position

	generation int
	analyzed   bool //queues hold a computed generation
}

//New creates the empty board with width x height cells
func New(width int, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[board.New] got %dx%d", width, height)
	}
	return &Board{
		width:            width,
		height:           height,
		cells:            NewPositionSet(),
		occupancy:        createOccupancy(width, height),
		initialCells:     NewPositionSet(),
		initialOccupancy: createOccupancy(width, height),
	}, nil
}

//Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

//Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

//InBounds checks if the position is within the bounds of the board
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

//Alive reports whether the cell at p is alive, positions outside the board are dead
func (b *Board) Alive(p Position) bool {
	if !b.InBounds(p) {
		return false
	}
	return b.occupancy[p.X][p.Y]
}

//InitiallyAlive reports whether the cell at p belongs to the initial snapshot
func (b *Board) InitiallyAlive(p Position) bool {
	if !b.InBounds(p) {
		return false
	}
	return b.initialOccupancy[p.X][p.Y]
}

//Len returns the number of live cells
func (b *Board) Len() int {
	return len(b.cells)
}

//Generation returns the number of computed generations applied since the last clear or reset
func (b *Board) Generation() int {
	return b.generation
}

//LiveCells returns the sorted copy of the live cells
func (b *Board) LiveCells() []Position {
	return b.cells.Sorted()
}

//InitialCells returns the sorted copy of the initial snapshot
func (b *Board) InitialCells() []Position {
	return b.initialCells.Sorted()
}

//Each calls fn for every live cell, the order is not defined
//fn must not modify the board
func (b *Board) Each(fn func(p Position)) {
	for p := range b.cells {
		fn(p)
	}
}

//Pending returns copies of the staged additions and deletions
func (b *Board) Pending() (additions []Position, deletions []Position) {
	additions = append([]Position(nil), b.additions...)
	deletions = append([]Position(nil), b.deletions...)
	return
}

//AddCell stages the cell at p to be added on the next Update
//initial skips the queue: the cell is added immediately and also recorded into the initial snapshot
func (b *Board) AddCell(p Position, initial bool) error {
	if !b.InBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "[AddCell] %v on %dx%d board", p, b.width, b.height)
	}
	if !initial {
		b.additions = append(b.additions, p)
		return nil
	}
	b.appendCell(p, true)
	return nil
}

//DeleteCell stages the cell at p to be deleted on the next Update
//initial skips the queue: the cell is deleted immediately and also removed from the initial snapshot
//deleting the dead cell does nothing
func (b *Board) DeleteCell(p Position, initial bool) error {
	if !b.InBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "[DeleteCell] %v on %dx%d board", p, b.width, b.height)
	}
	if !initial {
		b.deletions = append(b.deletions, p)
		return nil
	}
	b.removeCell(p, true)
	return nil
}

//FlipCell inverses the cell state at p bypassing the queues
//it is the editing operation, the initial snapshot follows the change
func (b *Board) FlipCell(p Position) error {
	if !b.InBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "[FlipCell] %v on %dx%d board", p, b.width, b.height)
	}
	if b.occupancy[p.X][p.Y] {
		b.removeCell(p, true)
	} else {
		b.appendCell(p, true)
	}
	return nil
}

//Update applies the staged additions, then the staged deletions,
//and stages the changes of the next generation
func (b *Board) Update() {
	for _, p := range b.additions {
		b.appendCell(p, false)
	}
	for _, p := range b.deletions {
		b.removeCell(p, false)
	}
	if b.analyzed {
		b.generation++
	}
	b.clearQueues()
	b.analyze()
	b.analyzed = true
}

//Clear kills all cells and drops the staged changes
//initial clears the initial snapshot as well
func (b *Board) Clear(initial bool) {
	b.cells.Clear()
	clearOccupancy(b.occupancy)
	b.clearQueues()
	b.generation = 0
	b.analyzed = false

	if initial {
		b.initialCells.Clear()
		clearOccupancy(b.initialOccupancy)
	}
}

//Reset restores the live cells from the initial snapshot
func (b *Board) Reset() {
	b.Clear(false)
	for p := range b.initialCells {
		b.appendCell(p, false)
	}
}

func (b *Board) clearQueues() {
	b.additions = b.additions[:0]
	b.deletions = b.deletions[:0]
}

//appendCell makes the cell alive, the caller guarantees p is in bounds
func (b *Board) appendCell(p Position, initial bool) {
	b.cells.Insert(p)
	b.occupancy[p.X][p.Y] = true

	if initial {
		b.initialCells.Insert(p)
		b.initialOccupancy[p.X][p.Y] = true
	}
}

//removeCell kills the cell, the caller guarantees p is in bounds
func (b *Board) removeCell(p Position, initial bool) {
	b.cells.Remove(p)
	b.occupancy[p.X][p.Y] = false

	if initial {
		b.initialCells.Remove(p)
		b.initialOccupancy[p.X][p.Y] = false
	}
}

//createOccupancy allocates the width x height array indexed [x][y] on one backing buffer
func createOccupancy(width int, height int) [][]bool {
	o := make([][]bool, width)
	buf := make([]bool, width*height)
	for x := range o {
		start := height * x
		o[x] = buf[start : start+height : start+height]
	}
	return o
}

func clearOccupancy(o [][]bool) {
	for x := range o {
		for y := range o[x] {
			o[x][y] = false
		}
	}
}
