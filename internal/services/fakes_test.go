package services

import (
	"context"
	"sort"
	"strings"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository used by the
// service tests. Maps are keyed by entity id; the progress store keys by
// the composite (user, ref type, ref key) so upsert semantics match the
// real store.
type fakeRepository struct {
	users       map[string]*models.User
	modules     map[string]*models.Module
	quizzes     map[string]*models.Quiz
	progress    map[string]*models.ProgressRecord
	enrollments map[string]*models.Enrollment
	chatLogs    []*models.ChatLog

	userOrder   []string
	moduleOrder []string

	failUserDelete error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:       make(map[string]*models.User),
		modules:     make(map[string]*models.Module),
		quizzes:     make(map[string]*models.Quiz),
		progress:    make(map[string]*models.ProgressRecord),
		enrollments: make(map[string]*models.Enrollment),
	}
}

func (f *fakeRepository) User() repositories.UserRepository             { return (*fakeUserRepo)(f) }
func (f *fakeRepository) Module() repositories.ModuleRepository         { return (*fakeModuleRepo)(f) }
func (f *fakeRepository) Quiz() repositories.QuizRepository             { return (*fakeQuizRepo)(f) }
func (f *fakeRepository) Progress() repositories.ProgressRepository     { return (*fakeProgressRepo)(f) }
func (f *fakeRepository) Enrollment() repositories.EnrollmentRepository { return (*fakeEnrollmentRepo)(f) }
func (f *fakeRepository) ChatLog() repositories.ChatLogRepository       { return (*fakeChatLogRepo)(f) }

func (f *fakeRepository) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(_ context.Context) error { return nil }
func (f *fakeRepository) Close() error                 { return nil }

// ----- users -----

type fakeUserRepo fakeRepository

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	f.userOrder = append(f.userOrder, user.ID)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if f.failUserDelete != nil {
		return f.failUserDelete
	}
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for i := len(f.userOrder) - 1; i >= 0; i-- {
		u, ok := f.users[f.userOrder[i]]
		if !ok {
			continue
		}
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// ----- modules -----

type fakeModuleRepo fakeRepository

func (f *fakeModuleRepo) Create(_ context.Context, module *models.Module) error {
	f.modules[module.ID] = module
	f.moduleOrder = append(f.moduleOrder, module.ID)
	return nil
}

func (f *fakeModuleRepo) GetByID(_ context.Context, id string) (*models.Module, error) {
	module, ok := f.modules[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return module, nil
}

func (f *fakeModuleRepo) List(_ context.Context) ([]*models.Module, error) {
	out := make([]*models.Module, 0, len(f.modules))
	for _, id := range f.moduleOrder {
		out = append(out, f.modules[id])
	}
	return out, nil
}

func (f *fakeModuleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.modules)), nil
}

// ----- quizzes -----

type fakeQuizRepo fakeRepository

func (f *fakeQuizRepo) Create(_ context.Context, quiz *models.Quiz) error {
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizRepo) ListByCreator(_ context.Context, createdBy string) ([]*models.Quiz, error) {
	out := make([]*models.Quiz, 0)
	for _, q := range f.quizzes {
		if q.CreatedBy == createdBy {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeQuizRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.quizzes)), nil
}

func (f *fakeQuizRepo) CountByCreator(_ context.Context, createdBy string) (int64, error) {
	var n int64
	for _, q := range f.quizzes {
		if q.CreatedBy == createdBy {
			n++
		}
	}
	return n, nil
}

// ----- progress -----

type fakeProgressRepo fakeRepository

func progressKey(r *models.ProgressRecord) string {
	return r.UserID + "|" + string(r.RefType) + "|" + r.RefKey
}

func (f *fakeProgressRepo) Upsert(_ context.Context, record *models.ProgressRecord) error {
	key := progressKey(record)
	if existing, ok := f.progress[key]; ok {
		record.ID = existing.ID
	}
	f.progress[key] = record
	return nil
}

func (f *fakeProgressRepo) GetByUser(_ context.Context, userID string) ([]*models.ProgressRecord, error) {
	out := make([]*models.ProgressRecord, 0)
	for _, r := range f.progress {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func (f *fakeProgressRepo) GetBelowScore(ctx context.Context, userID string, threshold float64) ([]*models.ProgressRecord, error) {
	all, _ := f.GetByUser(ctx, userID)
	out := make([]*models.ProgressRecord, 0)
	for _, r := range all {
		if r.Score < threshold {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (f *fakeProgressRepo) DeleteByUser(_ context.Context, userID string) error {
	for key, r := range f.progress {
		if r.UserID == userID {
			delete(f.progress, key)
		}
	}
	return nil
}

// ----- enrollments -----

type fakeEnrollmentRepo fakeRepository

func (f *fakeEnrollmentRepo) Upsert(_ context.Context, enrollment *models.Enrollment) error {
	key := enrollment.UserID + "|" + enrollment.CourseID
	if existing, ok := f.enrollments[key]; ok {
		enrollment.ID = existing.ID
	}
	f.enrollments[key] = enrollment
	return nil
}

func (f *fakeEnrollmentRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	_, ok := f.enrollments[userID+"|"+courseID]
	return ok, nil
}

func (f *fakeEnrollmentRepo) DeleteByUser(_ context.Context, userID string) error {
	for key, e := range f.enrollments {
		if e.UserID == userID {
			delete(f.enrollments, key)
		}
	}
	return nil
}

// ----- chat logs -----

type fakeChatLogRepo fakeRepository

func (f *fakeChatLogRepo) Create(_ context.Context, log *models.ChatLog) error {
	f.chatLogs = append(f.chatLogs, log)
	return nil
}

func (f *fakeChatLogRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := f.chatLogs[:0]
	for _, l := range f.chatLogs {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	f.chatLogs = kept
	return nil
}

// fakeProvider scripts completion replies per call.
type fakeProvider struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (p *fakeProvider) Complete(_ context.Context, _ string, userPrompt string) (string, error) {
	p.calls++
	p.prompts = append(p.prompts, userPrompt)
	if p.err != nil {
		return "", p.err
	}
	if len(p.replies) == 0 {
		return "", nil
	}
	reply := p.replies[0]
	if len(p.replies) > 1 {
		p.replies = p.replies[1:]
	}
	return reply, nil
}
