package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/DVA506/SmartMove/internal/console/notify"
)

// printer writes notifications to the operator terminal as they are
// published. Fade and removal are visual transitions with no terminal
// equivalent, so they are ignored here; tests observe them through their own
// listeners.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

var _ notify.Listener = (*printer)(nil)

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) Published(n notify.Notification) {
	marker := "·"
	switch n.Severity {
	case notify.SeverityPositive:
		marker = "✔"
	case notify.SeverityNegative:
		marker = "✘"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s: %s\n", marker, n.Title, n.Message)
}

func (p *printer) FadedOut(string) {}

func (p *printer) Removed(string) {}
