package orderlens

import "context"

// Approver handles user interaction for approval workflows, particularly
// for the destructive load step that replaces a non-empty orders table.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the table name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before replacing the orders
	// table in dbName, which currently holds rowCount rows.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, dbName string, rowCount int64) (bool, error)
}
