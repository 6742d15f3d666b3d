// Package terminal renders the simulation into a text terminal through tcell.
//
// World coordinates are scaled onto the cell grid; every marker becomes a filled
// ellipse of cells (at least one cell). Escape or Ctrl-C request close.
package terminal
