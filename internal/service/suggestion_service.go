package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/project-board/internal/ai"
)

// Fixed substitution texts for degraded modes. The service never surfaces a
// hard failure to the caller; the worst case is one of these strings or an
// empty suggestion list.
const (
	MissingCredentialNotice = "AI suggestions are disabled: no API key is configured."
	SuggestionErrorNotice   = "Error generating suggestion. Please try again."
)

// SubtaskSuggestion is one generated subtask.
type SubtaskSuggestion struct {
	Title string `json:"title"`
}

// SuggestionService adapts the generative client for task authoring. All
// failure modes degrade: missing credential, transport errors, empty
// responses, and malformed JSON each produce a fixed fallback rather than an
// error.
type SuggestionService struct {
	generator ai.Generator
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewSuggestionService constructs the service. A nil generator means no
// credential was configured; the service stays useful in that state.
func NewSuggestionService(generator ai.Generator, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionService{
		generator: generator,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Enabled reports whether a generative credential is configured.
func (s *SuggestionService) Enabled() bool {
	return s.generator != nil
}

const enhancePromptFormat = `You are a helpful project manager assistant.
The user has a task titled %q.
Current description: %q.

Please rewrite the description to be more professional, clear, and actionable.
Include a short bulleted list of potential acceptance criteria.
Keep it under 150 words.`

// EnhanceDescription rewrites a task description. Missing credential yields
// the fixed notice, a failed call yields the fixed error notice, and an
// empty model response falls back to the original description unchanged.
func (s *SuggestionService) EnhanceDescription(ctx context.Context, title, description string) string {
	if s.generator == nil {
		return MissingCredentialNotice
	}

	prompt := fmt.Sprintf(enhancePromptFormat, title, description)
	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("enhance description failed", zap.String("title", title), zap.Error(err))
		return SuggestionErrorNotice
	}
	if text == "" {
		return description
	}
	return text
}

const subtasksPromptFormat = `Generate a list of 3-5 concrete subtasks for a project task titled: %q.

Return your answer as a JSON array with this exact structure:
[{"title": "<subtask title>"}]

Return ONLY the JSON array. No markdown fences, no commentary outside the JSON.`

// GenerateSubtasks produces suggested subtasks for a task title. Every
// failure mode, including malformed JSON in a non-empty response, degrades
// to an empty list. Successful results are cached briefly so a double
// invocation does not pay for two model calls.
func (s *SuggestionService) GenerateSubtasks(ctx context.Context, title string) []SubtaskSuggestion {
	if s.generator == nil {
		return []SubtaskSuggestion{}
	}

	if cached, ok := s.cachedSubtasks(ctx, title); ok {
		return cached
	}

	prompt := fmt.Sprintf(subtasksPromptFormat, title)
	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("generate subtasks failed", zap.String("title", title), zap.Error(err))
		return []SubtaskSuggestion{}
	}
	if text == "" {
		return []SubtaskSuggestion{}
	}

	var suggestions []SubtaskSuggestion
	if err := json.Unmarshal([]byte(ai.StripJSONFences(text)), &suggestions); err != nil {
		s.logger.Warn("generate subtasks returned malformed JSON", zap.String("title", title), zap.Error(err))
		return []SubtaskSuggestion{}
	}
	if suggestions == nil {
		suggestions = []SubtaskSuggestion{}
	}

	s.storeSubtasks(ctx, title, suggestions)
	return suggestions
}

func (s *SuggestionService) cachedSubtasks(ctx context.Context, title string) ([]SubtaskSuggestion, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, subtaskCacheKey(title)).Result()
	if err != nil {
		return nil, false
	}
	var suggestions []SubtaskSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, false
	}
	return suggestions, true
}

func (s *SuggestionService) storeSubtasks(ctx context.Context, title string, suggestions []SubtaskSuggestion) {
	if s.cache == nil || s.cacheTTL <= 0 || len(suggestions) == 0 {
		return
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, subtaskCacheKey(title), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("subtask cache write failed", zap.Error(err))
	}
}

func subtaskCacheKey(title string) string {
	sum := sha256.Sum256([]byte(title))
	return "suggest:subtasks:" + hex.EncodeToString(sum[:8])
}
