package ai

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"deepguard/internal/models"
	"deepguard/internal/scoring"
)

const analyzerSystemPrompt = `You are a deepfake and synthetic-media analyst.
Given a URL to an image or video, assess how likely the content is
AI-generated or manipulated. Answer with a short assessment and always
include a line of the form "Confidence: NN%" where NN is 0-100.`

// Analysis is the outcome of one URL analysis.
type Analysis struct {
	URL          string
	Score        float64
	IsDeepfake   bool
	Confidence   models.ConfidenceBand
	Details      models.JSONMap
	ProcessingMS int64
}

// Analyzer runs deepfake analysis of URLs through a chat provider.
type Analyzer struct {
	provider ChatProvider
	timeout  time.Duration
}

// NewAnalyzer wraps a provider. A zero timeout defaults to 30s.
func NewAnalyzer(provider ChatProvider, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{provider: provider, timeout: timeout}
}

// AnalyzeURL asks the model to assess a URL and converts its answer into a
// score. The model's free-text verdict is parsed by the scoring package, so a
// provider that states an explicit confidence wins over keyword heuristics.
// Provider failure is a lookup failure, never a fabricated verdict.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*Analysis, error) {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: url must be absolute http(s)", models.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.provider.Chat(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: analyzerSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze this media URL for deepfake indicators: %s", parsed.String())},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("[ai] Analysis failed for %s via %s: %v", parsed.String(), a.provider.Name(), err)
		return nil, fmt.Errorf("%w: model analysis: %v", models.ErrLookupFailed, err)
	}
	elapsed := time.Since(start)

	verdict := ""
	if len(resp.Choices) > 0 {
		verdict = resp.Choices[0].Message.Content
	}
	if strings.TrimSpace(verdict) == "" {
		return nil, fmt.Errorf("%w: model returned empty verdict", models.ErrLookupFailed)
	}

	score := float64(scoring.ExtractScore(verdict))
	analysis := &Analysis{
		URL:        parsed.String(),
		Score:      score,
		IsDeepfake: scoring.IsDeepfake(score),
		Confidence: scoring.Band(score),
		Details: models.JSONMap{
			"provider": a.provider.Name(),
			"model":    resp.Model,
			"verdict":  verdict,
		},
		ProcessingMS: elapsed.Milliseconds(),
	}
	log.Printf("[ai] Analyzed %s: score=%.0f deepfake=%t (%dms)", parsed.String(), score, analysis.IsDeepfake, analysis.ProcessingMS)
	return analysis, nil
}
