package board

import "github.com/pkg/errors"

var (
	//ErrOutOfBounds is returned when the position lies outside [0,width)x[0,height)
	ErrOutOfBounds = errors.New("position is out of the board bounds")
	//ErrInvalidDimensions is returned by New for non-positive width or height
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
)
