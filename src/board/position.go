package board

import (
	"fmt"
	"sort"
)

//Position is the x,y coordinate of a cell, (0,0) is the first column of the first row
type Position struct {
	X int
	Y int
}

//P is a short constructor for Position, handy for templates and tests
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

//Add returns the position translated by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

//offsets of the 8 neighbours, starts at (-1,-1) and goes around the cell
var neighbourOffsets = [8]Position{
	{-1, -1}, {0, -1}, {1, -1},
	{1, 0},
	{1, 1}, {0, 1}, {-1, 1},
	{-1, 0},
}

//PositionSet is the set of unique positions
type PositionSet map[Position]struct{}

//NewPositionSet creates the set filled with ps
func NewPositionSet(ps ...Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		s.Insert(p)
	}
	return s
}

//Insert adds p to the set, returns false if p was already there
func (s PositionSet) Insert(p Position) bool {
	if _, ok := s[p]; ok {
		return false
	}
	s[p] = struct{}{}
	return true
}

//Remove deletes p from the set, returns false if p was absent
func (s PositionSet) Remove(p Position) bool {
	if _, ok := s[p]; !ok {
		return false
	}
	delete(s, p)
	return true
}

//Contains reports whether p is in the set
func (s PositionSet) Contains(p Position) bool {
	_, ok := s[p]
	return ok
}

//Clear removes all positions keeping the allocated map
func (s PositionSet) Clear() {
	for p := range s {
		delete(s, p)
	}
}

//Equal reports whether both sets hold the same positions
func (s PositionSet) Equal(o PositionSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Contains(p) {
			return false
		}
	}
	return true
}

//Sorted returns the positions ordered by row, then by column
func (s PositionSet) Sorted() []Position {
	ps := make([]Position, 0, len(s))
	for p := range s {
		ps = append(ps, p)
	}
	SortPositions(ps)
	return ps
}

//SortPositions orders ps by row, then by column
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
