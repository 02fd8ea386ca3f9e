package polls

import (
	"context"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
)

// Store is the persistence port the engine depends on. Implementations must
// return ErrNotFound for missing rows and ErrConflict when the unique index
// on (user, question) rejects a reply insert; that index, not the engine's
// pre-check, is the authoritative duplicate guard.
type Store interface {
	GetQuestion(ctx context.Context, id int) (*models.Question, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
	CreateQuestion(ctx context.Context, q *models.Question) error

	ListAnswers(ctx context.Context, questionID int) ([]models.Answer, error)
	CreateAnswer(ctx context.Context, a *models.Answer) error

	GetReply(ctx context.Context, id int) (*models.Reply, error)
	FindReply(ctx context.Context, questionID, userID int) (*models.Reply, error)
	ListReplies(ctx context.Context, questionID int) ([]models.Reply, error)
	ListRepliesByUser(ctx context.Context, userID int) ([]models.Reply, error)
	CreateReply(ctx context.Context, r *models.Reply) error
	UpdateReply(ctx context.Context, r *models.Reply) error
	DeleteReply(ctx context.Context, id int) error
}

// UserStore is the identity persistence port consumed by the auth handlers.
// The engine itself never loads users; it only sees Caller values.
type UserStore interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}
