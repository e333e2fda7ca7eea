package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifeboard/src/game"
)

//ConsoleOut is the headless viewer printing the progress of the running session
type ConsoleOut struct {
	out       io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
	lastGen   int
}

//NewConsoleOut creates the viewer printing every n-th generation to out
func NewConsoleOut(out io.Writer, every int, colors bool) *ConsoleOut {
	if every < 1 {
		every = 1
	}
	return &ConsoleOut{out: out, au: aurora.NewAurora(colors), every: every, lastGen: -1}
}

//Refresh is called by the session loop after every command and tick
func (c *ConsoleOut) Refresh(f game.Frame) {
	if f.Mode != game.ModeRunning || f.Generation == c.lastGen {
		return
	}
	c.lastGen = f.Generation
	if f.Generation%c.every == 0 {
		_, _ = fmt.Fprintf(c.out, "  Generations done: %v, live cells: %v\n", f.Generation, f.LiveCells)
	}
}

//Start prints the running configuration
func (c *ConsoleOut) Start(ctl game.Controller, initialCells int) {
	c.startTime = time.Now()
	o := ctl.Options()
	w, h := ctl.Size()
	_, _ = fmt.Fprintln(c.out, c.au.Bold("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":     fmt.Sprintf("%v x %v", w, h),
		"Interval":      o.Interval,
		"Max steps":     o.MaxSteps,
		"Initial cells": initialCells,
	})
	_, _ = fmt.Fprintln(c.out, c.au.Cyan("\nSimulation started..."))
}

//Finish prints the final status
func (c *ConsoleOut) Finish(st game.Status) {
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	_, _ = fmt.Fprintln(c.out, c.au.Red("\nFinished:"))
	c.printHashData(map[string]interface{}{
		"Last generation": st.Generation,
		"Total time":      totalTime,
		"Live cells":      st.LiveCells,
	})
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
