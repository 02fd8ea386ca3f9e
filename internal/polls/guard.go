package polls

import "github.com/emilythestrangee/prediction-polls/backend/internal/models"

// Caller is the authenticated identity attached to a request. A nil *Caller
// means anonymous; authentication itself happens outside the engine.
type Caller struct {
	UserID  int
	IsStaff bool
}

// CanView reports whether the caller may see a question in the given state.
// Unpublished questions are visible to staff only.
func CanView(state State, caller *Caller) bool {
	if state != Unpublished {
		return true
	}
	return caller != nil && caller.IsStaff
}

// CanMutate authorizes update/delete of a reply. The unauthenticated check
// runs before ownership so the two denials stay distinguishable at the
// boundary.
func CanMutate(reply *models.Reply, caller *Caller) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if caller.UserID != reply.UserID {
		return ErrForbidden
	}
	return nil
}
