package view

import (
	"lifeboard/src/game"
)

//settleTemplate puts the configured template in the middle of the board
//returns false when no template is configured
func settleTemplate(c game.Controller) bool {
	o := c.Options()
	if o.Template.Name == "" {
		return false
	}
	w, h := c.Size()
	c.Settle(o.Template, o.Template.Centered(w, h))
	return true
}
