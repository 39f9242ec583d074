package ledger

import "context"

// Repository is the persistence collaborator for the two ledger tables. The
// engine never assumes incremental persistence: saves replace the whole table
// (clear then rewrite), matching the backing store's snapshot semantics.
type Repository interface {
	LoadBorrowers(ctx context.Context) ([]Borrower, error)

	LoadPayments(ctx context.Context) ([]Payment, error)

	ReplaceBorrowers(ctx context.Context, borrowers []Borrower) error

	ReplacePayments(ctx context.Context, payments []Payment) error
}
