package domain

import "context"

// BankRepository loads the validated question bank.
type BankRepository interface {
	// GetBank returns the full validated bank. The returned slice must be
	// treated as read-only; it may be shared between requests.
	GetBank(ctx context.Context) ([]Question, error)

	// BankBytes returns the raw bank source, for download endpoints.
	BankBytes(ctx context.Context) ([]byte, error)
}

// Renderer turns an assembled exam into a paginated document. It is a pure
// structure-in, bytes-out transform: it must not alter selection or scoring.
type Renderer interface {
	Render(exam *Exam, includeSolutions bool) ([]byte, error)
}
