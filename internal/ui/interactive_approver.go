// Package ui implements the console approvers that gate replacing a
// non-empty orders table.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// InteractiveApprover prompts the user to type the table name to confirm
// replacing a non-empty orders table.
type InteractiveApprover struct {
	in  io.Reader
	out io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading from stdin
// and writing to stderr.
func NewInteractiveApprover() orderlens.Approver {
	return &InteractiveApprover{in: os.Stdin, out: os.Stderr}
}

// NewInteractiveApproverIO creates an InteractiveApprover with explicit
// streams. Used by tests.
func NewInteractiveApproverIO(in io.Reader, out io.Writer) orderlens.Approver {
	return &InteractiveApprover{in: in, out: out}
}

// RequestApproval prompts the user to type the orders table name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, dbName string, rowCount int64) (bool, error) {
	fmt.Fprintf(a.out, "\n⚠️  WARNING: The orders table in database '%s' already holds %d rows\n", dbName, rowCount)
	fmt.Fprintln(a.out, "Loading will permanently replace all of them!")
	fmt.Fprintf(a.out, "\nTo confirm, type '%s' and press Enter: ", orderlens.OrdersTable)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.in)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == orderlens.OrdersTable {
			fmt.Fprintln(a.out, "✓ Confirmed. Replacing the orders table...")
			return true, nil
		}
		fmt.Fprintf(a.out, "✗ Input '%s' does not match '%s'. Load cancelled.\n", input, orderlens.OrdersTable)
		return false, nil
	}
}

var _ orderlens.Approver = (*InteractiveApprover)(nil)
