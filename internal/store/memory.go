package store

import (
	"context"
	"sort"
	"sync"

	"github.com/emilythestrangee/prediction-polls/backend/internal/models"
	"github.com/emilythestrangee/prediction-polls/backend/internal/polls"
)

// Memory is an in-process Store and UserStore used by tests. It mirrors the
// database's behavior the engine depends on: sequential IDs, creation-order
// listings, and a unique (user, question) constraint on replies enforced
// under the same lock as the insert.
type Memory struct {
	mu        sync.Mutex
	questions map[int]models.Question
	answers   map[int]models.Answer
	replies   map[int]models.Reply
	users     map[int]models.User
	nextID    map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		questions: make(map[int]models.Question),
		answers:   make(map[int]models.Answer),
		replies:   make(map[int]models.Reply),
		users:     make(map[int]models.User),
		nextID:    map[string]int{"question": 1, "answer": 1, "reply": 1, "user": 1},
	}
}

func (m *Memory) next(kind string) int {
	id := m.nextID[kind]
	m.nextID[kind] = id + 1
	return id
}

func (m *Memory) GetQuestion(_ context.Context, id int) (*models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return nil, polls.ErrNotFound
	}
	return &q, nil
}

func (m *Memory) ListQuestions(_ context.Context) ([]models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	qs := make([]models.Question, 0, len(m.questions))
	for _, q := range m.questions {
		qs = append(qs, q)
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })
	return qs, nil
}

func (m *Memory) CreateQuestion(_ context.Context, q *models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID == 0 {
		q.ID = m.next("question")
	}
	m.questions[q.ID] = *q
	return nil
}

func (m *Memory) ListAnswers(_ context.Context, questionID int) ([]models.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	as := []models.Answer{}
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			as = append(as, a)
		}
	}
	sort.Slice(as, func(i, j int) bool { return as[i].ID < as[j].ID })
	return as, nil
}

func (m *Memory) CreateAnswer(_ context.Context, a *models.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		a.ID = m.next("answer")
	}
	m.answers[a.ID] = *a
	return nil
}

func (m *Memory) GetReply(_ context.Context, id int) (*models.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.replies[id]
	if !ok {
		return nil, polls.ErrNotFound
	}
	return &r, nil
}

func (m *Memory) FindReply(_ context.Context, questionID, userID int) (*models.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.replies {
		if r.QuestionID == questionID && r.UserID == userID {
			reply := r
			return &reply, nil
		}
	}
	return nil, polls.ErrNotFound
}

func (m *Memory) ListReplies(_ context.Context, questionID int) ([]models.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := []models.Reply{}
	for _, r := range m.replies {
		if r.QuestionID == questionID {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	return rs, nil
}

func (m *Memory) ListRepliesByUser(_ context.Context, userID int) ([]models.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := []models.Reply{}
	for _, r := range m.replies {
		if r.UserID == userID {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	return rs, nil
}

func (m *Memory) CreateReply(_ context.Context, r *models.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Uniqueness check and insert happen under one lock, matching the
	// atomicity the unique index gives the SQL store.
	for _, existing := range m.replies {
		if existing.QuestionID == r.QuestionID && existing.UserID == r.UserID {
			return polls.ErrConflict
		}
	}
	if r.ID == 0 {
		r.ID = m.next("reply")
	}
	m.replies[r.ID] = *r
	return nil
}

func (m *Memory) UpdateReply(_ context.Context, r *models.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.replies[r.ID]; !ok {
		return polls.ErrNotFound
	}
	m.replies[r.ID] = *r
	return nil
}

func (m *Memory) DeleteReply(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.replies[id]; !ok {
		return polls.ErrNotFound
	}
	delete(m.replies, id)
	return nil
}

func (m *Memory) GetUser(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, polls.ErrNotFound
	}
	return &u, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, polls.ErrNotFound
}

func (m *Memory) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, polls.ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return polls.ErrConflict
		}
	}
	if u.ID == 0 {
		u.ID = m.next("user")
	}
	m.users[u.ID] = *u
	return nil
}
