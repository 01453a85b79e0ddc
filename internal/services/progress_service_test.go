package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulearn-platform/learning-service/internal/events"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

func newTestProgressService(repo *fakeRepository, publisher events.EventPublisher) ProgressService {
	return NewProgressService(repo, publisher, testLogger(), validator.New())
}

func seedStudent(repo *fakeRepository, id, name string) {
	repo.users[id] = &models.User{
		ID:    id,
		Name:  name,
		Email: name + "@example.com",
		Role:  models.RoleStudent,
	}
	repo.userOrder = append(repo.userOrder, id)
}

func TestProgressService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("retake overwrites previous attempt", func(t *testing.T) {
		repo := newFakeRepository()
		publisher := events.NewMockEventPublisher()
		svc := newTestProgressService(repo, publisher)

		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{ModuleID: "m1", Topic: "Algebra", Score: 40}))
		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{ModuleID: "m1", Topic: "Algebra", Score: 90}))

		history, err := svc.History(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, history.History, 1)
		assert.Equal(t, 90.0, history.History[0].Score)
		assert.Equal(t, 1, history.Stats.TotalQuizzes)

		assert.Len(t, publisher.PublishedEvents(), 2)
	})

	t.Run("module and topic keys never collide", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestProgressService(repo, nil)

		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{ModuleID: "Algebra", Score: 50}))
		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 70}))

		history, err := svc.History(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, history.History, 2)
	})

	t.Run("requires module or topic", func(t *testing.T) {
		svc := newTestProgressService(newFakeRepository(), nil)
		err := svc.Record(ctx, "u1", &ProgressUpdateRequest{Score: 50})
		assert.ErrorIs(t, err, ErrProgressKeyRequired)
	})

	t.Run("status defaults to completed", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestProgressService(repo, nil)

		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 50}))

		history, err := svc.History(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, models.ProgressStatusCompleted, history.History[0].Status)
	})

	t.Run("rejects out-of-range score", func(t *testing.T) {
		svc := newTestProgressService(newFakeRepository(), nil)
		err := svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 101})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestProgressService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("average rounds to one decimal", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestProgressService(repo, nil)

		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "A", Score: 70}))
		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "B", Score: 80}))
		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "C", Score: 95}))

		history, err := svc.History(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 3, history.Stats.TotalQuizzes)
		assert.Equal(t, 81.7, history.Stats.AverageScore)
	})

	t.Run("empty history has zero stats", func(t *testing.T) {
		svc := newTestProgressService(newFakeRepository(), nil)

		history, err := svc.History(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, history.History)
		assert.Equal(t, 0, history.Stats.TotalQuizzes)
		assert.Equal(t, 0.0, history.Stats.AverageScore)
	})
}

func TestProgressService_WeakTopics(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestProgressService(repo, nil)

	require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 45}))
	require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{ModuleID: "m1", Topic: "Algebra", Score: 55}))
	require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Geometry", Score: 59.9}))
	require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "History", Score: 60}))

	topics, err := svc.WeakTopics(ctx, "u1", WeakScoreThreshold)
	require.NoError(t, err)

	// Algebra appears once despite two weak records; 60 is not weak.
	assert.ElementsMatch(t, []string{"Algebra", "Geometry"}, topics)
}

func TestProgressService_WeakestTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("lowest score wins", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestProgressService(repo, nil)

		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 45}))
		require.NoError(t, svc.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Geometry", Score: 30}))

		topic, err := svc.WeakestTopic(ctx, "u1", WeakScoreThreshold)
		require.NoError(t, err)
		assert.Equal(t, "Geometry", topic)
	})

	t.Run("tie breaks toward most recent", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestProgressService(repo, nil)

		now := time.Now().UTC()
		repo.progress["u1|topic|Algebra"] = &models.ProgressRecord{
			ID: "p1", UserID: "u1", RefType: models.ProgressRefTopic, RefKey: "Algebra",
			Topic: "Algebra", Score: 30, LastUpdated: now.Add(-time.Hour),
		}
		repo.progress["u1|topic|Geometry"] = &models.ProgressRecord{
			ID: "p2", UserID: "u1", RefType: models.ProgressRefTopic, RefKey: "Geometry",
			Topic: "Geometry", Score: 30, LastUpdated: now,
		}

		topic, err := svc.WeakestTopic(ctx, "u1", WeakScoreThreshold)
		require.NoError(t, err)
		assert.Equal(t, "Geometry", topic)
	})

	t.Run("no weak records", func(t *testing.T) {
		svc := newTestProgressService(newFakeRepository(), nil)

		topic, err := svc.WeakestTopic(ctx, "u1", WeakScoreThreshold)
		require.NoError(t, err)
		assert.Empty(t, topic)
	})
}

func TestProgressService_ClassAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestProgressService(repo, nil)

	seedStudent(repo, "s1", "alice")
	seedStudent(repo, "s2", "bob")
	seedStudent(repo, "s3", "carol")

	require.NoError(t, svc.Record(ctx, "s1", &ProgressUpdateRequest{Topic: "A", Score: 100}))
	require.NoError(t, svc.Record(ctx, "s2", &ProgressUpdateRequest{Topic: "A", Score: 0}))
	require.NoError(t, svc.Record(ctx, "s2", &ProgressUpdateRequest{Topic: "B", Score: 0}))

	analytics, err := svc.ClassAnalytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), analytics.Stats.TotalStudents)
	// Attempt-weighted: 100 over 3 attempts, not the mean of 100 and 0.
	assert.Equal(t, 33.3, analytics.Stats.ClassAverage)

	require.Len(t, analytics.Students, 3)
	assert.Equal(t, "alice", analytics.Students[0].Name)
	assert.Equal(t, "Active", analytics.Students[0].Status)
	assert.Equal(t, 100.0, analytics.Students[0].AverageScore)

	assert.Equal(t, "bob", analytics.Students[1].Name)
	assert.Equal(t, 2, analytics.Students[1].QuizzesTaken)
	assert.Equal(t, 0.0, analytics.Students[1].AverageScore)

	assert.Equal(t, "carol", analytics.Students[2].Name)
	assert.Equal(t, "Inactive", analytics.Students[2].Status)
	assert.Equal(t, 0, analytics.Students[2].QuizzesTaken)
}
