// Package report renders fix-chain discoveries as a real-time text stream.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"fixtrace/internal/chain"
)

const indentPerDepth = 2

// Printer writes one self-contained line per discovery, indented by depth.
//
// Concurrent traversals interleave their blocks; the mutex keeps each
// line intact, and no line depends on the one before it beyond the
// indentation marker.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Emit implements chain.Sink. A primary match prints the originating
// subject line first; chain matches print only the fixed-by line, two
// extra spaces per depth.
func (p *Printer) Emit(d chain.Discovery) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d.Depth <= 1 {
		_, _ = fmt.Fprintf(p.out, "%s\n↳ fixed by %s : %s\n", d.Subject, d.Commit.Hash, d.Commit.Subject)
		return
	}

	indent := strings.Repeat(" ", indentPerDepth*(d.Depth-1))
	_, _ = fmt.Fprintf(p.out, "%s↳ fixed by %s : %s\n", indent, d.Commit.Hash, d.Commit.Subject)
}
