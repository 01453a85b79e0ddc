package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

const sampleQuizJSON = `[
	{"question": "What is 2+2?", "options": ["3", "4", "5", "6"], "answer": "4"},
	{"question": "What is 3*3?", "options": ["6", "9", "12", "18"], "answer": "9"},
	{"question": "What is 10/2?", "options": ["2", "5", "10", "20"], "answer": "5"}
]`

func newTestAIService(repo *fakeRepository, provider CompletionProvider) AIService {
	progress := newTestProgressService(repo, nil)
	return NewAIService(repo, provider, progress, testLogger())
}

func TestAIService_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("returns reply and stores chat log", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestAIService(repo, &fakeProvider{replies: []string{"Photosynthesis converts light into energy."}})

		reply, err := svc.Chat(ctx, "u1", "What is photosynthesis?")
		require.NoError(t, err)
		assert.Equal(t, "Photosynthesis converts light into energy.", reply)

		require.Len(t, repo.chatLogs, 1)
		assert.Equal(t, "u1", repo.chatLogs[0].UserID)
		assert.Equal(t, "What is photosynthesis?", repo.chatLogs[0].Message)
		assert.Equal(t, reply, repo.chatLogs[0].Reply)
	})

	t.Run("provider failure falls back to offline message", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestAIService(repo, &fakeProvider{err: errors.New("connection refused")})

		reply, err := svc.Chat(ctx, "u1", "hello")
		require.NoError(t, err)
		assert.Equal(t, "I am currently offline.", reply)

		// The fallback exchange is still logged.
		require.Len(t, repo.chatLogs, 1)
		assert.Equal(t, "I am currently offline.", repo.chatLogs[0].Reply)
	})

	t.Run("blank reply falls back too", func(t *testing.T) {
		repo := newFakeRepository()
		svc := newTestAIService(repo, &fakeProvider{replies: []string{"   \n"}})

		reply, err := svc.Chat(ctx, "u1", "hello")
		require.NoError(t, err)
		assert.Equal(t, "I am currently offline.", reply)
	})
}

func TestAIService_GenerateQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("parses clean JSON", func(t *testing.T) {
		svc := newTestAIService(newFakeRepository(), &fakeProvider{replies: []string{sampleQuizJSON}})

		questions := svc.GenerateQuiz(ctx, "Math", models.DifficultyEasy)
		require.Len(t, questions, 3)
		assert.Equal(t, "What is 2+2?", questions[0].Question)
		assert.Equal(t, "4", questions[0].Answer)
	})

	t.Run("strips code fences and surrounding prose", func(t *testing.T) {
		wrapped := "Here is your quiz:\n```json\n" + sampleQuizJSON + "\n```\nEnjoy!"
		svc := newTestAIService(newFakeRepository(), &fakeProvider{replies: []string{wrapped}})

		questions := svc.GenerateQuiz(ctx, "Math", models.DifficultyEasy)
		assert.Len(t, questions, 3)
	})

	t.Run("drops malformed items", func(t *testing.T) {
		mixed := `[
			{"question": "", "options": ["a", "b", "c"], "answer": "a"},
			{"question": "ok?", "options": ["a", "b"], "answer": "a"},
			{"question": "valid?", "options": ["a", "b", "c", "d"], "answer": "a"}
		]`
		svc := newTestAIService(newFakeRepository(), &fakeProvider{replies: []string{mixed}})

		questions := svc.GenerateQuiz(ctx, "Math", models.DifficultyEasy)
		require.Len(t, questions, 1)
		assert.Equal(t, "valid?", questions[0].Question)
	})

	t.Run("non-JSON reply yields nothing", func(t *testing.T) {
		svc := newTestAIService(newFakeRepository(), &fakeProvider{replies: []string{"I cannot help with that."}})
		assert.Empty(t, svc.GenerateQuiz(ctx, "Math", models.DifficultyEasy))
	})

	t.Run("provider failure yields nothing", func(t *testing.T) {
		svc := newTestAIService(newFakeRepository(), &fakeProvider{err: errors.New("timeout")})
		assert.Empty(t, svc.GenerateQuiz(ctx, "Math", models.DifficultyEasy))
	})
}

func TestParseQuizJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain array", sampleQuizJSON, 3},
		{"fenced array", "```json\n" + sampleQuizJSON + "\n```", 3},
		{"prose around array", "Sure! " + sampleQuizJSON + " Hope that helps.", 3},
		{"no array", "no questions here", 0},
		{"truncated array", `[{"question": "q", "options"`, 0},
		{"empty array", "[]", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, parseQuizJSON(tt.raw), tt.want)
		})
	}
}

func TestAIService_Recommendation(t *testing.T) {
	ctx := context.Background()

	t.Run("no weak areas", func(t *testing.T) {
		svc := newTestAIService(newFakeRepository(), &fakeProvider{})

		msg, err := svc.Recommendation(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Great job! No weak areas found.", msg)
	})

	t.Run("builds plan from weak topics", func(t *testing.T) {
		repo := newFakeRepository()
		progress := newTestProgressService(repo, nil)
		require.NoError(t, progress.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 40}))

		provider := &fakeProvider{replies: []string{"1. Review basics\n2. Practice\n3. Retake quiz"}}
		svc := NewAIService(repo, provider, progress, testLogger())

		plan, err := svc.Recommendation(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "1. Review basics\n2. Practice\n3. Retake quiz", plan)
		require.Len(t, provider.prompts, 1)
		assert.Contains(t, provider.prompts[0], "Algebra")
	})

	t.Run("provider failure falls back to study tip", func(t *testing.T) {
		repo := newFakeRepository()
		progress := newTestProgressService(repo, nil)
		require.NoError(t, progress.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 40}))

		svc := NewAIService(repo, &fakeProvider{err: errors.New("down")}, progress, testLogger())

		plan, err := svc.Recommendation(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Review your course materials and try again.", plan)
	})
}

func TestAIService_AdaptiveQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("targets weakest topic", func(t *testing.T) {
		repo := newFakeRepository()
		progress := newTestProgressService(repo, nil)
		require.NoError(t, progress.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Algebra", Score: 30}))
		require.NoError(t, progress.Record(ctx, "u1", &ProgressUpdateRequest{Topic: "Geometry", Score: 55}))

		provider := &fakeProvider{replies: []string{sampleQuizJSON}}
		svc := NewAIService(repo, provider, progress, testLogger())

		resp, err := svc.AdaptiveQuiz(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Algebra", resp.Topic)
		assert.Len(t, resp.Quiz, 3)
		require.Len(t, provider.prompts, 1)
		assert.Contains(t, provider.prompts[0], "Algebra")
		assert.Contains(t, provider.prompts[0], string(models.DifficultyHard))
	})

	t.Run("defaults to general knowledge", func(t *testing.T) {
		provider := &fakeProvider{replies: []string{sampleQuizJSON}}
		svc := newTestAIService(newFakeRepository(), provider)

		resp, err := svc.AdaptiveQuiz(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "General Knowledge", resp.Topic)
	})

	t.Run("generation failure surfaces error", func(t *testing.T) {
		svc := newTestAIService(newFakeRepository(), &fakeProvider{err: errors.New("down")})

		_, err := svc.AdaptiveQuiz(ctx, "u1")
		assert.ErrorIs(t, err, ErrQuizGenerationFailed)
	})
}

// Validator wiring sanity check: the chat DTO requires a message.
func TestChatRequestValidation(t *testing.T) {
	v := validator.New()
	assert.Error(t, v.Validate(&ChatRequest{}))
	assert.NoError(t, v.Validate(&ChatRequest{Message: "hi"}))
}
