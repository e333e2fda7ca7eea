package seed

import (
	"sort"

	"github.com/pkg/errors"

	"lifeboard/src/board"
)

//ErrUnknownTemplate is returned by Lookup for a name which is not registered
var ErrUnknownTemplate = errors.New("unknown template")

//Template is the predefined pattern the board can be settled with
type Template struct {
	Name  string
	Descr string
	Cells []board.Position
}

var templates = map[string]Template{}

//Register adds the template to the registry, a template with the same name is replaced
func Register(t Template) {
	if t.Name == "" {
		return
	}
	templates[t.Name] = t
}

//Lookup returns the registered template
func Lookup(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, errors.Wrapf(ErrUnknownTemplate, "[Lookup] %q", name)
	}
	return t, nil
}

//Names lists the registered templates in alphabetical order
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//Settle adds the template cells translated by offset to the board as initial cells
//Cells falling outside the board are skipped, their number is returned
func (t Template) Settle(b *board.Board, offset board.Position) (skipped int) {
	for _, p := range t.Cells {
		if err := b.AddCell(p.Add(offset), true); err != nil {
			skipped++
		}
	}
	return
}

//Centered returns the offset placing the template in the middle of the width x height board
func (t Template) Centered(width int, height int) board.Position {
	w, h := t.Size()
	return board.P((width-w)/2, (height-h)/2)
}

//Size returns the width and height of the template bounding box, measured from (0,0)
func (t Template) Size() (w int, h int) {
	for _, p := range t.Cells {
		w = max(w, p.X+1)
		h = max(h, p.Y+1)
	}
	return
}

func init() {
	Register(Template{
		Name:  "glider",
		Descr: "the smallest spaceship, moves by (+1,+1) every 4 generations",
		Cells: []board.Position{board.P(1, 0), board.P(2, 1), board.P(0, 2), board.P(1, 2), board.P(2, 2)},
	})
	Register(Template{
		Name:  "blinker",
		Descr: "period 2 oscillator",
		Cells: []board.Position{board.P(0, 1), board.P(1, 1), board.P(2, 1)},
	})
	Register(Template{
		Name:  "block",
		Descr: "2x2 still life",
		Cells: []board.Position{board.P(0, 0), board.P(1, 0), board.P(0, 1), board.P(1, 1)},
	})
	Register(Template{
		Name:  "sample",
		Descr: "the block touching a small cluster, an irregular start",
		Cells: []board.Position{board.P(1, 1), board.P(1, 2), board.P(2, 1), board.P(2, 2), board.P(3, 3), board.P(4, 2), board.P(4, 3), board.P(5, 3)},
	})
}
