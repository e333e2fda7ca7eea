package board

//Survives reports whether the live cell with n live neighbours stays alive
func Survives(n int) bool {
	return n == 2 || n == 3
}

//Born reports whether the dead cell with n live neighbours becomes alive
//the match is exact: 4 and more neighbours never give birth
func Born(n int) bool {
	return n == 3
}

//analyze stages the changes of the next generation against the current field
//only the live cells and their dead neighbours are visited
func (b *Board) analyze() {
	deadNeighbours := make(map[Position]int, len(b.cells)*2)
	for cell := range b.cells {
		live := 0
		b.walkNeighbours(cell, func(n Position) {
			if b.occupancy[n.X][n.Y] {
				live++
			} else {
				deadNeighbours[n]++
			}
		})
		if !Survives(live) {
			b.deletions = append(b.deletions, cell)
		}
	}

	for p, count := range deadNeighbours {
		if Born(count) && !b.occupancy[p.X][p.Y] {
			b.additions = append(b.additions, p)
		}
	}
	//map iteration order is random, keep the queues reproducible
	SortPositions(b.additions)
	SortPositions(b.deletions)
}

//walkNeighbours calls fn for every neighbour of p inside the board
func (b *Board) walkNeighbours(p Position, fn func(n Position)) {
	for _, d := range neighbourOffsets {
		n := p.Add(d)
		if !b.InBounds(n) {
			continue
		}
		fn(n)
	}
}

//Neighbours returns the in-bounds neighbours of p
func (b *Board) Neighbours(p Position) []Position {
	ns := make([]Position, 0, len(neighbourOffsets))
	b.walkNeighbours(p, func(n Position) {
		ns = append(ns, n)
	})
	return ns
}

//LiveNeighbours counts the live neighbours of p
func (b *Board) LiveNeighbours(p Position) int {
	live := 0
	b.walkNeighbours(p, func(n Position) {
		if b.occupancy[n.X][n.Y] {
			live++
		}
	})
	return live
}
