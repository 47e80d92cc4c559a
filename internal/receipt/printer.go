package receipt

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Printer is the print surface. The side effect is isolated here so Render
// stays pure and a sale can be re-printed at any point in the session.
type Printer interface {
	Print(ctx context.Context, doc Document) error
}

// SpoolPrinter writes rendered documents to a spool writer, typically the
// pipe a print daemon or ESC/POS bridge reads from.
type SpoolPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewSpoolPrinter(w io.Writer) *SpoolPrinter {
	return &SpoolPrinter{w: w}
}

func (p *SpoolPrinter) Print(_ context.Context, doc Document) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, doc.Text()+"\f"); err != nil {
		return fmt.Errorf("print spool write failed: %w", err)
	}
	return nil
}
