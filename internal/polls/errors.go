package polls

import "errors"

// Error taxonomy of the reply engine. Handlers map these onto HTTP statuses;
// everything here is per-request and recoverable by the caller.
var (
	// ErrNotFound covers both "does not exist" and "exists but the caller may
	// not see it"; the two are indistinguishable so unpublished questions are
	// not revealed.
	ErrNotFound = errors.New("not found")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	ErrQuestionNotOpen   = errors.New("question is not open")
	ErrInvalidQuestion   = errors.New("date_concluded must be after date_published")
	ErrDuplicateReply    = errors.New("user has already replied to this question")
	ErrInvalidVote       = errors.New("Invalid vote.")
	ErrInvalidPrediction = errors.New("Invalid prediction.")

	// ErrConflict is returned by Store implementations when the unique index
	// on (user, question) rejects a concurrent insert. The engine maps it to
	// ErrDuplicateReply before it reaches the boundary.
	ErrConflict = errors.New("conflict")
)
