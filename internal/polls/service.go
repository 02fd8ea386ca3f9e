package polls

import (
	"context"
	"errors"
	"time"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
)

// Service is the reply engine. It holds no mutable state of its own; all
// coordination is delegated to the store's transactional guarantees.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceWithClock injects the clock used by the lifecycle resolver.
func NewServiceWithClock(store Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// visibleQuestion loads a question and applies the visibility mask: an
// unpublished question is reported as not found to anyone but staff.
func (s *Service) visibleQuestion(ctx context.Context, id int, caller *Caller) (*models.Question, State, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, Unpublished, err
	}
	state := Resolve(q, s.now())
	if !CanView(state, caller) {
		return nil, state, ErrNotFound
	}
	return q, state, nil
}

// ListQuestions returns every question the caller may see.
func (s *Service) ListQuestions(ctx context.Context, caller *Caller) ([]models.Question, error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	visible := []models.Question{}
	for _, q := range all {
		if CanView(Resolve(&q, now), caller) {
			visible = append(visible, q)
		}
	}
	return visible, nil
}

func (s *Service) GetQuestion(ctx context.Context, id int, caller *Caller) (*models.Question, error) {
	q, _, err := s.visibleQuestion(ctx, id, caller)
	return q, err
}

func (s *Service) ListAnswers(ctx context.Context, questionID int, caller *Caller) ([]models.Answer, error) {
	if _, _, err := s.visibleQuestion(ctx, questionID, caller); err != nil {
		return nil, err
	}
	return s.store.ListAnswers(ctx, questionID)
}

// CreateQuestion is a staff-only authoring operation.
func (s *Service) CreateQuestion(ctx context.Context, caller *Caller, content string, published, concluded time.Time) (*models.Question, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if !caller.IsStaff {
		return nil, ErrForbidden
	}
	if !concluded.After(published) {
		return nil, ErrInvalidQuestion
	}
	q := &models.Question{Content: content, DatePublished: published, DateConcluded: concluded}
	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// CreateAnswer is a staff-only authoring operation. Staff see the question
// in any state, so no visibility mask applies beyond existence.
func (s *Service) CreateAnswer(ctx context.Context, questionID int, caller *Caller, content string) (*models.Answer, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if !caller.IsStaff {
		return nil, ErrForbidden
	}
	if _, err := s.store.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	a := &models.Answer{Content: content, QuestionID: questionID}
	if err := s.store.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListReplies returns all replies to a question in creation order. Reply
// contents are not owner-restricted for reads; only the question's
// visibility gates the listing.
func (s *Service) ListReplies(ctx context.Context, questionID int, caller *Caller) ([]models.Reply, error) {
	if _, _, err := s.visibleQuestion(ctx, questionID, caller); err != nil {
		return nil, err
	}
	return s.store.ListReplies(ctx, questionID)
}

// CreateReply records a caller's vote and prediction for an open question.
// The store's unique index backs the duplicate pre-check; a conflict on
// insert surfaces as ErrDuplicateReply.
func (s *Service) CreateReply(ctx context.Context, questionID int, caller *Caller, voteID, predictionID int) (*models.Reply, error) {
	_, state, err := s.visibleQuestion(ctx, questionID, caller)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	existing, err := s.store.FindReply(ctx, questionID, caller.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	answers, err := s.store.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if err := ValidateCreate(state, existing, answers, voteID, predictionID); err != nil {
		return nil, err
	}

	reply := &models.Reply{
		UserID:       caller.UserID,
		QuestionID:   questionID,
		VoteID:       voteID,
		PredictionID: predictionID,
	}
	if err := s.store.CreateReply(ctx, reply); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrDuplicateReply
		}
		return nil, err
	}
	return reply, nil
}

func (s *Service) GetReply(ctx context.Context, questionID, replyID int, caller *Caller) (*models.Reply, error) {
	if _, _, err := s.visibleQuestion(ctx, questionID, caller); err != nil {
		return nil, err
	}
	reply, err := s.store.GetReply(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply.QuestionID != questionID {
		return nil, ErrNotFound
	}
	return reply, nil
}

// UpdateReply applies a partial update to the caller's own reply. Supplied
// fields are membership-checked; omitted fields keep their prior values.
// Lifecycle is not re-checked: only creation is gated on the question being
// open.
func (s *Service) UpdateReply(ctx context.Context, questionID, replyID int, caller *Caller, voteID, predictionID *int) (*models.Reply, error) {
	reply, err := s.GetReply(ctx, questionID, replyID, caller)
	if err != nil {
		return nil, err
	}
	if err := CanMutate(reply, caller); err != nil {
		return nil, err
	}
	answers, err := s.store.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if err := ValidateUpdate(answers, voteID, predictionID); err != nil {
		return nil, err
	}
	if voteID != nil {
		reply.VoteID = *voteID
	}
	if predictionID != nil {
		reply.PredictionID = *predictionID
	}
	if err := s.store.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *Service) DeleteReply(ctx context.Context, questionID, replyID int, caller *Caller) error {
	reply, err := s.GetReply(ctx, questionID, replyID, caller)
	if err != nil {
		return err
	}
	if err := CanMutate(reply, caller); err != nil {
		return err
	}
	return s.store.DeleteReply(ctx, reply.ID)
}
