// Package ui renders pipeline progress on the console: in-place status lines
// for work in flight, persistent lines for completed stages, warnings and
// errors.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Printer writes console output. Progress lines overwrite themselves in
// place; persistent lines first clear any pending progress line so the two
// never interleave.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	pending int // width of the progress line currently on screen
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Progress shows an ephemeral status line, replacing the previous one.
func (p *Printer) Progress(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	pad := ""
	if n := p.pending - len(msg); n > 0 {
		pad = strings.Repeat(" ", n)
	}

	fmt.Fprintf(p.w, "\r%s%s", msg, pad)
	p.pending = len(msg)
}

// Println prints a persistent line, clearing any progress line first.
func (p *Printer) Println(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clear()
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Errorln prints a persistent ERROR line.
func (p *Printer) Errorln(format string, args ...any) {
	p.Println("ERROR: "+format, args...)
}

// Warnln prints a persistent WARNING line.
func (p *Printer) Warnln(format string, args ...any) {
	p.Println("WARNING: "+format, args...)
}

func (p *Printer) clear() {
	if p.pending == 0 {
		return
	}

	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.pending))
	p.pending = 0
}
