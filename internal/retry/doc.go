// Package retry provides retry execution with exponential backoff and
// PostgreSQL-aware error classification. Connection attempts go through an
// Executor that retries transient failures (network hiccups, server still
// starting, pool exhaustion) and fails fast on everything else.
package retry
