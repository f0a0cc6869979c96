// Package idempotency guards admin create forms against duplicate
// submission: each rendered form carries a one-time token, and a replayed
// POST is answered with the originally created resource instead of a second
// copy.
package idempotency

import "context"

// Submission records the outcome of a consumed form token.
type Submission struct {
	ResourceID string
}

// Store ensures create operations can be retried safely.
type Store interface {
	Get(ctx context.Context, token string) (*Submission, error)
	Save(ctx context.Context, token string, submission Submission) error
}
