package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

func newTestStudentService(repo *fakeRepository) StudentService {
	return NewStudentService(repo, testLogger(), validator.New())
}

func seedModule(repo *fakeRepository, id, title string) {
	repo.modules[id] = &models.Module{ID: id, Title: title, Subject: models.SubjectGeneral}
	repo.moduleOrder = append(repo.moduleOrder, id)
}

func TestStudentService_Profile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedStudent(repo, "s1", "alice")
	svc := newTestStudentService(repo)

	t.Run("found", func(t *testing.T) {
		profile, err := svc.Profile(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Name)
		assert.Equal(t, models.RoleStudent, profile.Role)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Profile(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStudentService_Courses(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedStudent(repo, "s1", "alice")
	seedModule(repo, "m1", "Algebra")
	seedModule(repo, "m2", "Geometry")
	svc := newTestStudentService(repo)

	require.NoError(t, svc.Enroll(ctx, "s1", &EnrollRequest{CourseID: "m1"}))

	courses, err := svc.Courses(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, "m1", courses[0].ID)
	assert.True(t, courses[0].IsEnrolled)
	assert.Equal(t, "m2", courses[1].ID)
	assert.False(t, courses[1].IsEnrolled)
}

func TestStudentService_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown course", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestStudentService(repo)

		err := svc.Enroll(ctx, "s1", &EnrollRequest{CourseID: "nope"})
		assert.ErrorIs(t, err, ErrModuleNotFound)
	})

	t.Run("re-enrolling is idempotent", func(t *testing.T) {
		repo := newFakeRepository()
		seedModule(repo, "m1", "Algebra")
		svc := newTestStudentService(repo)

		require.NoError(t, svc.Enroll(ctx, "s1", &EnrollRequest{CourseID: "m1"}))
		require.NoError(t, svc.Enroll(ctx, "s1", &EnrollRequest{CourseID: "m1"}))
		assert.Len(t, repo.enrollments, 1)
	})
}

func TestStudentService_AssignedQuizzes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.quizzes["q1"] = &models.Quiz{ID: "q1", Topic: "Algebra", CreatedBy: models.QuizCreatedByTeacher}
	repo.quizzes["q2"] = &models.Quiz{ID: "q2", Topic: "Scratch", CreatedBy: "AI"}
	svc := newTestStudentService(repo)

	quizzes, err := svc.AssignedQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "q1", quizzes[0].ID)
}

func TestModuleService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewModuleService(repo, testLogger(), validator.New())

	t.Run("fills subject default", func(t *testing.T) {
		module, err := svc.Create(ctx, &CreateModuleRequest{Title: "Algebra", Content: "Numbers and letters"}, "t1", models.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, models.SubjectGeneral, module.Subject)
		assert.Equal(t, models.RoleTeacher, module.CreatedBy)
		assert.Equal(t, "t1", module.CreatedByID)
		assert.NotNil(t, repo.modules[module.ID])
	})

	t.Run("missing title fails validation", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateModuleRequest{Content: "body"}, "t1", models.RoleTeacher)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
