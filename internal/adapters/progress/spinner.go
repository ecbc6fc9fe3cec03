package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
	"github.com/zkbugbounty/bountydeploy/internal/usecase"
)

// SpinnerSink reports deployment progress on stderr with a spinner, keeping
// stdout for the address lines
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer
	started time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     os.Stderr,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageDeploying:
		r.started = time.Now()
	case usecase.StageDeployed:
		r.stop()
		if d, ok := event.Metadata.(*domain.Deployment); ok {
			color.New(color.FgGreen).Fprintf(r.out, "✓ %s deployed in block %s (tx %s, gas %d, %s)\n",
				d.ContractName, d.BlockNumber, d.TxHash.Hex(), d.GasUsed, time.Since(r.started).Round(time.Millisecond))
		}
		return
	case usecase.StageFailed:
		r.stop()
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + stepPrefix(event) + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else {
		r.stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.withSpinnerPaused(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// stepPrefix renders "[i/n] " for multi-step scripts
func stepPrefix(event usecase.ProgressEvent) string {
	if event.Total < 2 || event.Current == 0 {
		return ""
	}
	return fmt.Sprintf("[%d/%d] ", event.Current, event.Total)
}

func (r *SpinnerSink) withSpinnerPaused(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
