package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

// Gorm is the production Store backed by Postgres through GORM. It relies on
// the translated gorm errors, so the *gorm.DB must be opened with
// TranslateError enabled (internal/database does this).
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return polls.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return polls.ErrConflict
	}
	return err
}

func (s *Gorm) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (s *Gorm) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var qs []models.Question
	if err := s.db.WithContext(ctx).Order("id").Find(&qs).Error; err != nil {
		return nil, translate(err)
	}
	return qs, nil
}

func (s *Gorm) CreateQuestion(ctx context.Context, q *models.Question) error {
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("create question: %w", translate(err))
	}
	return nil
}

func (s *Gorm) ListAnswers(ctx context.Context, questionID int) ([]models.Answer, error) {
	var as []models.Answer
	if err := s.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id").Find(&as).Error; err != nil {
		return nil, translate(err)
	}
	return as, nil
}

func (s *Gorm) CreateAnswer(ctx context.Context, a *models.Answer) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create answer: %w", translate(err))
	}
	return nil
}

func (s *Gorm) GetReply(ctx context.Context, id int) (*models.Reply, error) {
	var r models.Reply
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Gorm) FindReply(ctx context.Context, questionID, userID int) (*models.Reply, error) {
	var r models.Reply
	err := s.db.WithContext(ctx).
		Where("question_id = ? AND user_id = ?", questionID, userID).
		First(&r).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Gorm) ListReplies(ctx context.Context, questionID int) ([]models.Reply, error) {
	var rs []models.Reply
	if err := s.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id").Find(&rs).Error; err != nil {
		return nil, translate(err)
	}
	return rs, nil
}

func (s *Gorm) ListRepliesByUser(ctx context.Context, userID int) ([]models.Reply, error) {
	var rs []models.Reply
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rs).Error; err != nil {
		return nil, translate(err)
	}
	return rs, nil
}

func (s *Gorm) CreateReply(ctx context.Context, r *models.Reply) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Gorm) UpdateReply(ctx context.Context, r *models.Reply) error {
	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *Gorm) DeleteReply(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&models.Reply{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return polls.ErrNotFound
	}
	return nil
}

func (s *Gorm) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Gorm) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err)
	}
	return nil
}
