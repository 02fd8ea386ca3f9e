package polls

import (
	"time"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
)

// State is a question's temporal lifecycle state, derived on every access
// from the clock and the question's timestamps. Nothing caches it.
type State int

const (
	Unpublished State = iota
	Open
	Concluded
)

func (s State) String() string {
	switch s {
	case Unpublished:
		return "unpublished"
	case Open:
		return "open"
	case Concluded:
		return "concluded"
	}
	return "unknown"
}

// Resolve derives the lifecycle state of a question at the given instant.
// Boundaries are half-open: now == date_published is Open, now ==
// date_concluded is Concluded.
func Resolve(q *models.Question, now time.Time) State {
	if now.Before(q.DatePublished) {
		return Unpublished
	}
	if !now.Before(q.DateConcluded) {
		return Concluded
	}
	return Open
}
