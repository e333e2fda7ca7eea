//go:build !ebiten

package view

import (
	"context"

	"github.com/pkg/errors"
)

//ErrNoWindow is returned by Window.Run in builds without the ebiten tag
var ErrNoWindow = errors.New("the window view requires building with the 'ebiten' tag")

type painter struct{}

//Run reports that the GUI build tag is missing
func (w *Window) Run(context.Context) error {
	return ErrNoWindow
}
