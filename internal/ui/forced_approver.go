package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// ForcedApprover counts down and then approves automatically. Used when the
// --force flag is provided, so scripted loads still leave a window for
// Ctrl+C.
type ForcedApprover struct {
	out       io.Writer
	countdown time.Duration
}

// NewForcedApprover creates a ForcedApprover with the default countdown.
func NewForcedApprover() orderlens.Approver {
	return &ForcedApprover{out: os.Stderr, countdown: orderlens.DefaultForceApprovalCountdown}
}

// NewForcedApproverIO creates a ForcedApprover with an explicit output
// stream and countdown. Used by tests.
func NewForcedApproverIO(out io.Writer, countdown time.Duration) orderlens.Approver {
	return &ForcedApprover{out: out, countdown: countdown}
}

// RequestApproval displays a countdown and approves once it elapses.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string, rowCount int64) (bool, error) {
	fmt.Fprintf(a.out, "\n⚠️  --force: replacing %d existing rows in database '%s'\n", rowCount, dbName)

	for remaining := int(a.countdown.Seconds()); remaining > 0; remaining-- {
		fmt.Fprintf(a.out, "\rReplacing in: %d seconds... (Press Ctrl+C to cancel)", remaining)
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return false, ctx.Err()
		case <-time.After(time.Second):
		}
	}

	fmt.Fprintf(a.out, "\r✓ Proceeding with table replacement...                  \n")
	return true, nil
}

var _ orderlens.Approver = (*ForcedApprover)(nil)
