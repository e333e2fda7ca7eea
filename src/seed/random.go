package seed

import (
	"math/rand/v2"
	"time"

	"lifeboard/src/board"
)

//DefChance is the default "1 in N" chance of a cell to be seeded
const DefChance = 6

//Decider tells whether the cell at p should be seeded alive
type Decider func(p board.Position) bool

//RNG is a deterministic random source for seeding
type RNG struct {
	r *rand.Rand
}

//NewRNG creates the RNG, a zero seed picks a time based one
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

//IntN returns a random int in [0, n)
func (r *RNG) IntN(n int) int {
	return r.r.IntN(n)
}

//OneIn returns the Decider which seeds a cell with the 1 in n chance
//n below 1 is treated as 1, every cell is seeded then
func OneIn(r *RNG, n int) Decider {
	if n < 1 {
		n = 1
	}
	return func(board.Position) bool {
		return r.IntN(n) == 0
	}
}

//Pattern returns the Decider which seeds exactly the given cells
func Pattern(cells ...board.Position) Decider {
	s := board.NewPositionSet(cells...)
	return s.Contains
}

//Populate clears the board with its initial snapshot and seeds every cell
//the decider picks as the new initial state, returns the number of seeded cells
func Populate(b *board.Board, d Decider) int {
	b.Clear(true)
	seeded := 0
	for x := 0; x < b.Width(); x++ {
		for y := 0; y < b.Height(); y++ {
			p := board.P(x, y)
			if !d(p) {
				continue
			}
			if err := b.AddCell(p, true); err == nil {
				seeded++
			}
		}
	}
	return seeded
}
