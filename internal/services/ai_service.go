package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

// Provider outages degrade to canned responses; chat and recommendation
// flows must never surface a provider error to the client.
const (
	chatFallbackReply   = "I am currently offline."
	studyPlanFallback   = "Review your course materials and try again."
	noWeakTopicsMessage = "Great job! No weak areas found."
	adaptiveQuizDefault = "General Knowledge"

	providerTimeout = 15 * time.Second
)

const tutorSystemPrompt = "You are an AI academic tutor. Answer strictly education-related questions. Be concise and encouraging."

type aiService struct {
	repo     repositories.Repository
	provider CompletionProvider
	progress ProgressService
	logger   *slog.Logger
}

func NewAIService(
	repo repositories.Repository,
	provider CompletionProvider,
	progress ProgressService,
	logger *slog.Logger,
) AIService {
	return &aiService{
		repo:     repo,
		provider: provider,
		progress: progress,
		logger:   logger,
	}
}

// Chat forwards the message with the tutor framing and appends the
// exchange to the chat log. A provider failure yields the offline
// fallback, never an error.
func (s *aiService) Chat(ctx context.Context, userID, message string) (string, error) {
	reply := s.complete(ctx, tutorSystemPrompt, message)
	if reply == "" {
		reply = chatFallbackReply
	}

	log := &models.ChatLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Reply:     reply,
		Timestamp: time.Now().UTC(),
	}
	if err := s.repo.ChatLog().Create(ctx, log); err != nil {
		// The reply already exists; losing the log line is not worth
		// failing the request over.
		s.logger.Warn("failed to store chat log", "user_id", userID, "error", err)
	}

	return reply, nil
}

// GenerateQuiz asks the provider for exactly three questions as raw JSON
// and defensively parses the reply. An empty result always means
// generation failed; a well-formed quiz can never have zero questions.
func (s *aiService) GenerateQuiz(ctx context.Context, topic string, difficulty models.Difficulty) []models.QuizQuestion {
	prompt := fmt.Sprintf(
		"Create a JSON quiz on '%s', difficulty: %s. Return exactly 3 questions. "+
			`JSON format: [{"question": "...", "options": ["A", "B", "C", "D"], "answer": "A"}] `+
			"Return ONLY raw JSON. Do not use Markdown.",
		topic, difficulty)

	raw := s.complete(ctx, tutorSystemPrompt, prompt)
	if raw == "" {
		return nil
	}

	questions := parseQuizJSON(raw)
	if len(questions) == 0 {
		s.logger.Warn("quiz generation produced no usable questions", "topic", topic)
	}
	return questions
}

// Recommendation builds a study plan from the caller's weak topics.
func (s *aiService) Recommendation(ctx context.Context, userID string) (string, error) {
	topics, err := s.progress.WeakTopics(ctx, userID, WeakScoreThreshold)
	if err != nil {
		return "", err
	}
	if len(topics) == 0 {
		return noWeakTopicsMessage, nil
	}

	prompt := fmt.Sprintf(
		"The student scored low in these topics: %s. "+
			"Provide a personalized 3-step study plan to improve. "+
			"Keep it short, bulleted, and actionable.",
		strings.Join(topics, ", "))

	plan := s.complete(ctx, tutorSystemPrompt, prompt)
	if plan == "" {
		plan = studyPlanFallback
	}
	return plan, nil
}

// AdaptiveQuiz targets the caller's weakest topic at Hard difficulty,
// falling back to general knowledge when no weakness is recorded.
func (s *aiService) AdaptiveQuiz(ctx context.Context, userID string) (*AdaptiveQuizResponse, error) {
	topic, err := s.progress.WeakestTopic(ctx, userID, WeakScoreThreshold)
	if err != nil {
		return nil, err
	}
	if topic == "" {
		topic = adaptiveQuizDefault
	}

	questions := s.GenerateQuiz(ctx, topic, models.DifficultyHard)
	if len(questions) == 0 {
		return nil, ErrQuizGenerationFailed
	}

	return &AdaptiveQuizResponse{Topic: topic, Quiz: questions}, nil
}

// complete runs one provider call under the facade timeout. All failures
// collapse to an empty string; callers decide the fallback.
func (s *aiService) complete(ctx context.Context, systemPrompt, userPrompt string) string {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	reply, err := s.provider.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("completion provider failed", "error", err)
		return ""
	}
	return strings.TrimSpace(reply)
}

// parseQuizJSON recovers a question list from provider output that may be
// wrapped in code fences or prose: strip fences, slice from the first '['
// to the last ']', then unmarshal and drop malformed items.
func parseQuizJSON(raw string) []models.QuizQuestion {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	var parsed []models.QuizQuestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil
	}

	questions := make([]models.QuizQuestion, 0, len(parsed))
	for _, q := range parsed {
		if q.Question == "" || q.Answer == "" || len(q.Options) < 3 {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}
